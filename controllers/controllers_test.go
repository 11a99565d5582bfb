package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/agromarket-api/config"
	"github.com/Kariqs/agromarket-api/controllers"
	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/Kariqs/agromarket-api/models"
	"github.com/Kariqs/agromarket-api/routes"
	"github.com/Kariqs/agromarket-api/storage"
	"github.com/Kariqs/agromarket-api/testutil"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const jwtSecret = "test-secret"

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	initializers.DB = db

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: jwtSecret, TTL: time.Hour},
		Admin:   config.AdminConfig{SuperAdminEmail: "root@example.com"},
		Listing: config.ListingConfig{PageSize: 12},
	}
	controllers.Configure(controllers.Dependencies{Config: cfg})

	engine := gin.New()
	routes.Register(engine, cfg)
	return &testServer{t: t, db: db, engine: engine}
}

func (s *testServer) profile(email string, admin bool) (models.Profile, string) {
	s.t.Helper()
	p := models.Profile{Email: email, FullName: strings.Split(email, "@")[0], UserType: models.UserTypeFarmer, Role: models.RoleUser}
	if admin {
		p.IsAdmin, p.Role, p.UserType = true, models.RoleAdmin, models.UserTypeAdmin
	}
	require.NoError(s.t, s.db.Create(&p).Error)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  p.ID,
		"email":    p.Email,
		"role":     p.Role,
		"is_admin": p.IsAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	require.NoError(s.t, err)
	return p, token
}

func (s *testServer) request(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.serve(req, token)
}

func (s *testServer) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	signup := map[string]any{"email": "Kamau@Example.com", "password": "supersecret", "full_name": "Kamau", "user_type": "buyer"}
	w := s.request(http.MethodPost, "/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(http.MethodPost, "/auth/signup", "", signup)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/auth/login", "", map[string]string{"email": "kamau@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/auth/login", "", map[string]string{"email": "kamau@example.com", "password": "supersecret"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[struct {
		Token   string         `json:"token"`
		Profile models.Profile `json:"profile"`
	}](t, w)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, models.UserTypeBuyer, login.Profile.UserType)
	assert.NotContains(t, w.Body.String(), "password_hash")

	w = s.request(http.MethodPatch, "/auth/me", login.Token, map[string]string{"location": "Nakuru"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodGet, "/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		Profile models.Profile `json:"profile"`
	}](t, w)
	assert.Equal(t, "Nakuru", me.Profile.Location)

	assert.Equal(t, http.StatusUnauthorized, s.request(http.MethodGet, "/auth/me", "", nil).Code)

	var welcome models.EmailLog
	require.NoError(t, s.db.Where("recipient = ?", "kamau@example.com").First(&welcome).Error)
	assert.Equal(t, models.EmailStatusFailed, welcome.Status, "no smtp transport in tests")
}

func TestLoginRejectsPasswordlessAdminProfile(t *testing.T) {
	s := newTestServer(t)
	s.profile("nopass@example.com", true)

	w := s.request(http.MethodPost, "/auth/login", "", map[string]string{"email": "nopass@example.com", "password": "anything"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func landForm() map[string]any {
	return map[string]any{
		"title":       "Five acres near Naivasha",
		"description": "Fertile land with borehole access",
		"price":       12000,
		"location":    "Naivasha",
		"land_type":   "arable",
		"area_size":   5,
		"area_unit":   "acre",
	}
}

func multipartLand(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range landForm() {
		require.NoError(t, mw.WriteField(k, strings.TrimSpace(jsonScalar(v))))
	}

	addFile := func(name, contentType string, data []byte) {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	addFile("plot.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	addFile("notes.txt", "text/plain", []byte("not an image"))
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func jsonScalar(v any) string {
	raw, _ := json.Marshal(v)
	return strings.Trim(string(raw), `"`)
}

func TestLandListingLifecycle(t *testing.T) {
	s := newTestServer(t)
	owner, ownerToken := s.profile("owner@example.com", false)
	_, strangerToken := s.profile("stranger@example.com", false)
	_, adminToken := s.profile("admin@example.com", true)

	incomplete := landForm()
	delete(incomplete, "land_type")
	w := s.request(http.MethodPost, "/land", ownerToken, incomplete)
	require.Equal(t, http.StatusBadRequest, w.Code)
	verr := decode[struct {
		Step   int               `json:"step"`
		Fields map[string]string `json:"fields"`
	}](t, w)
	assert.Equal(t, 1, verr.Step)
	assert.Contains(t, verr.Fields, "land_type")

	assert.Equal(t, http.StatusUnauthorized, s.request(http.MethodPost, "/land", "", landForm()).Code)

	body, contentType := multipartLand(t)
	req := httptest.NewRequest(http.MethodPost, "/land", body)
	req.Header.Set("Content-Type", contentType)
	w = s.serve(req, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.LandListing](t, w)
	assert.Equal(t, owner.ID, created.UserID)
	assert.Equal(t, "acre", created.AreaUnit)
	require.Len(t, created.Images, 2)
	assert.True(t, strings.HasPrefix(created.Images[0], "data:image/png;base64,"))
	assert.Equal(t, storage.Placeholder, created.Images[1])

	var uploads []models.FileUpload
	require.NoError(t, s.db.Order("file_name").Find(&uploads).Error)
	require.Len(t, uploads, 2)
	assert.Equal(t, models.UploadStatusFailed, uploads[0].Status)
	assert.Equal(t, models.UploadStatusUploaded, uploads[1].Status)

	w = s.request(http.MethodPost, "/land", ownerToken, map[string]any{
		"title": "Small plot", "description": "Half an acre of red soil", "price": 800,
		"location": "Thika", "land_type": "residential", "area_size": 0.5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(http.MethodGet, "/land?min_area=1&sort=price_desc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[struct {
		Items    []models.LandListing `json:"items"`
		Metadata struct {
			Total int64 `json:"total"`
		} `json:"metadata"`
	}](t, w)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)
	assert.Equal(t, int64(1), page.Metadata.Total)

	w = s.request(http.MethodGet, "/land/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[models.LandListing](t, w).ViewCount)
	assert.Equal(t, http.StatusNotFound, s.request(http.MethodGet, "/land/missing", "", nil).Code)

	w = s.request(http.MethodGet, "/land/mine", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string][]models.LandListing](t, w)["land"], 2)

	patch := map[string]any{"price": 11000, "is_featured": true}
	assert.Equal(t, http.StatusForbidden, s.request(http.MethodPatch, "/land/"+created.ID, strangerToken, patch).Code)

	w = s.request(http.MethodPatch, "/land/"+created.ID, ownerToken, patch)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stored models.LandListing
	require.NoError(t, s.db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, 11000.0, stored.Price)
	assert.False(t, stored.IsFeatured, "only admins feature listings")

	assert.Equal(t, http.StatusForbidden, s.request(http.MethodDelete, "/land/"+created.ID, strangerToken, nil).Code)
	assert.Equal(t, http.StatusOK, s.request(http.MethodDelete, "/land/"+created.ID, adminToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.request(http.MethodDelete, "/land/"+created.ID, adminToken, nil).Code)
}

func TestExpertRoutes(t *testing.T) {
	s := newTestServer(t)
	_, ownerToken := s.profile("vet@example.com", false)
	_, otherToken := s.profile("other@example.com", false)

	expert := map[string]any{
		"name":                "Dr. Njeri",
		"phone":               "+254700000000",
		"location":            "Eldoret",
		"title":               "Veterinary officer",
		"specialization":      "Dairy cattle",
		"bio":                 "Fifteen years treating dairy herds in the Rift Valley.",
		"experience_years":    15,
		"certifications":      []string{"KVB licence"},
		"availability_status": "available",
		"consultation_fee":    1500,
	}
	w := s.request(http.MethodPost, "/experts", ownerToken, expert)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.ExpertProfile](t, w)

	w = s.request(http.MethodGet, "/experts?category=dairy%20cattle", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.ID)

	assert.Equal(t, http.StatusOK, s.request(http.MethodGet, "/experts/"+created.ID, "", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.request(http.MethodDelete, "/experts/"+created.ID, otherToken, nil).Code)
	assert.Equal(t, http.StatusOK, s.request(http.MethodDelete, "/experts/"+created.ID, ownerToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.request(http.MethodGet, "/experts/"+created.ID, "", nil).Code)
}

func TestOrderReservesStock(t *testing.T) {
	s := newTestServer(t)
	seller, sellerToken := s.profile("seller@example.com", false)
	buyer, buyerToken := s.profile("buyer@example.com", false)
	_ = seller

	w := s.request(http.MethodPost, "/marketplace", sellerToken, map[string]any{
		"name": "Hass avocados", "category": "fruit", "price": 50, "unit": "kg", "stock": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[models.MarketplaceItem](t, w)

	w = s.request(http.MethodPost, "/cart", buyerToken, map[string]any{"item_id": item.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.request(http.MethodPost, "/cart", buyerToken, map[string]any{"item_id": item.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodGet, "/cart", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode[struct {
		Cart models.Cart `json:"cart"`
	}](t, w).Cart
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	order := map[string]any{
		"first_name": "Amina", "last_name": "Hassan", "email": "buyer@example.com",
		"phone": "+254711111111", "delivery_location": "Mombasa",
		"total":       1,
		"order_items": []map[string]any{{"item_id": item.ID, "quantity": 3, "price": 0.01}},
	}
	w = s.request(http.MethodPost, "/orders", buyerToken, order)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	placed := decode[struct {
		Order models.Order `json:"order"`
	}](t, w).Order
	assert.Equal(t, buyer.ID, placed.UserID)
	assert.Equal(t, 150.0, placed.Total, "total is priced from the catalogue")
	assert.Equal(t, models.PaymentStatusUnpaid, placed.PaymentStatus)

	var stock models.MarketplaceItem
	require.NoError(t, s.db.First(&stock, "id = ?", item.ID).Error)
	assert.Equal(t, 2, stock.Stock)

	w = s.request(http.MethodPost, "/orders", buyerToken, order)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, s.db.First(&stock, "id = ?", item.ID).Error)
	assert.Equal(t, 2, stock.Stock, "failed order leaves stock untouched")

	var orders int64
	require.NoError(t, s.db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(1), orders)

	var cartItems int64
	require.NoError(t, s.db.Model(&models.CartItem{}).Count(&cartItems).Error)
	assert.Zero(t, cartItems, "cart is cleared after ordering")

	w = s.request(http.MethodGet, "/orders/mine", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), placed.ID)

	assert.Equal(t, http.StatusForbidden, s.request(http.MethodGet, "/orders", buyerToken, nil).Code)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	user, userToken := s.profile("user@example.com", false)
	_, adminToken := s.profile("admin@example.com", true)

	addByEmail := map[string]string{"email": "new-admin@example.com"}
	assert.Equal(t, http.StatusForbidden, s.request(http.MethodPost, "/api/admin/add-admin", userToken, addByEmail).Code)

	for i := 0; i < 2; i++ {
		w := s.request(http.MethodPost, "/api/admin/add-admin", adminToken, addByEmail)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, true, decode[map[string]any](t, w)["success"])
	}
	var count int64
	require.NoError(t, s.db.Model(&models.Profile{}).Where("email = ?", "new-admin@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w := s.request(http.MethodPost, "/api/admin/remove-admin", adminToken, map[string]string{"userId": user.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
	res := decode[map[string]any](t, w)
	assert.Equal(t, false, res["success"])
	assert.NotEmpty(t, res["error"])

	w = s.request(http.MethodPost, "/api/admin/remove-admin", adminToken, map[string]string{"userId": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(http.MethodPost, "/api/admin/add-admin", adminToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/api/admin/add-admin", adminToken, map[string]string{"userId": user.ID})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.request(http.MethodPost, "/api/admin/remove-admin", adminToken, map[string]string{"userId": user.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := decode[struct {
		Stats struct {
			Users int64 `json:"users"`
		} `json:"stats"`
	}](t, w)
	assert.Equal(t, int64(3), stats.Stats.Users)

	w = s.request(http.MethodGet, "/api/admin/notifications?unread=true", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notes := decode[struct {
		Notifications []models.AdminNotification `json:"notifications"`
	}](t, w).Notifications
	require.Len(t, notes, 3)

	w = s.request(http.MethodPost, "/api/admin/notifications/"+notes[0].ID+"/read", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/admin/users?search=user%40", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestAdminToggleAppliesToIssuedTokens(t *testing.T) {
	s := newTestServer(t)
	deputy, deputyToken := s.profile("deputy@example.com", true)
	_, adminToken := s.profile("admin@example.com", true)
	user, userToken := s.profile("user@example.com", false)

	require.Equal(t, http.StatusOK, s.request(http.MethodGet, "/api/admin/dashboard", deputyToken, nil).Code)

	w := s.request(http.MethodPost, "/api/admin/remove-admin", adminToken, map[string]string{"userId": deputy.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusForbidden, s.request(http.MethodGet, "/api/admin/dashboard", deputyToken, nil).Code)

	w = s.request(http.MethodPost, "/api/admin/add-admin", adminToken, map[string]string{"userId": user.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusOK, s.request(http.MethodGet, "/api/admin/dashboard", userToken, nil).Code)

	require.NoError(t, s.db.Delete(&models.Profile{}, "id = ?", user.ID).Error)
	assert.Equal(t, http.StatusUnauthorized, s.request(http.MethodGet, "/auth/me", userToken, nil).Code)
}

func TestSuperAdminEmailGrantsAccess(t *testing.T) {
	s := newTestServer(t)
	_, rootToken := s.profile("root@example.com", false)

	assert.Equal(t, http.StatusOK, s.request(http.MethodGet, "/api/admin/dashboard", rootToken, nil).Code)
}

func TestWizardStepValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.request(http.MethodPost, "/wizards/expert/steps/1/validate", "", map[string]string{
		"name": "Dr. Njeri", "phone": "+254700000000", "location": "Eldoret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode[map[string]any](t, w)["valid"])

	w = s.request(http.MethodPost, "/wizards/expert/steps/2/validate", "", map[string]string{
		"name": "Dr. Njeri", "phone": "+254700000000",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	res := decode[struct {
		Valid  bool              `json:"valid"`
		Step   int               `json:"step"`
		Fields map[string]string `json:"fields"`
	}](t, w)
	assert.False(t, res.Valid)
	assert.Equal(t, 1, res.Step)
	assert.Contains(t, res.Fields, "location")

	assert.Equal(t, http.StatusBadRequest, s.request(http.MethodPost, "/wizards/expert/steps/9/validate", "", map[string]string{}).Code)
	assert.Equal(t, http.StatusNotFound, s.request(http.MethodPost, "/wizards/unknown/steps/1/validate", "", map[string]string{}).Code)
}

func TestContactAndHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.request(http.MethodPost, "/contact", "", map[string]string{
		"name": "Wekesa", "email": "wekesa@example.com", "subject": "Bulk maize", "message": "Do you deliver to Bungoma?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var notes int64
	require.NoError(t, s.db.Model(&models.AdminNotification{}).Count(&notes).Error)
	assert.Equal(t, int64(1), notes)

	assert.Equal(t, http.StatusBadRequest, s.request(http.MethodPost, "/contact", "", map[string]string{"name": "x"}).Code)
	assert.Equal(t, http.StatusOK, s.request(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.request(http.MethodGet, "/", "", nil).Code)
}

func TestMarketplaceItems(t *testing.T) {
	s := newTestServer(t)
	_, sellerToken := s.profile("seller@example.com", false)
	_, otherToken := s.profile("other@example.com", false)

	for _, item := range []map[string]any{
		{"name": "Maize seed", "category": "seeds", "price": 300, "unit": "kg", "location": "Eldoret", "stock": 40, "tags": []string{"certified"}},
		{"name": "Dairy meal", "category": "feeds", "price": 2500, "unit": "bag", "location": "Nakuru", "stock": 12},
		{"name": "Bean seed", "category": "seeds", "price": 180, "unit": "kg", "location": "Kitale", "stock": 25},
	} {
		w := s.request(http.MethodPost, "/marketplace", sellerToken, item)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.request(http.MethodPost, "/marketplace", sellerToken, map[string]any{"category": "seeds"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(http.MethodGet, "/marketplace?category=seeds&sort=price_asc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[struct {
		Items    []models.MarketplaceItem `json:"items"`
		Metadata struct {
			Total int64 `json:"total"`
		} `json:"metadata"`
	}](t, w)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Metadata.Total)
	assert.Equal(t, "Bean seed", page.Items[0].Name)
	assert.Equal(t, "Maize seed", page.Items[1].Name)

	id := page.Items[1].ID
	w = s.request(http.MethodPatch, "/marketplace/"+id, otherToken, map[string]any{"price": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(http.MethodPatch, "/marketplace/"+id, sellerToken, map[string]any{"price": 320, "stock": 35})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.MarketplaceItem](t, w)
	assert.Equal(t, 320.0, updated.Price)
	assert.Equal(t, 35, updated.Stock)
	assert.Equal(t, []string{"certified"}, []string(updated.Tags))

	w = s.request(http.MethodDelete, "/marketplace/"+id, sellerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.request(http.MethodGet, "/marketplace/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarketplacePatchKeepsConcurrentStockReservation(t *testing.T) {
	s := newTestServer(t)
	_, sellerToken := s.profile("seller@example.com", false)

	w := s.request(http.MethodPost, "/marketplace", sellerToken, map[string]any{"name": "Avocado seedlings", "category": "seedlings", "price": 150, "stock": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[models.MarketplaceItem](t, w)

	// An order reserves one unit right after the handler has loaded the row.
	reserved := false
	require.NoError(t, s.db.Callback().Query().After("gorm:query").Register("test:reserve_after_read", func(tx *gorm.DB) {
		if reserved || tx.Statement.Table != "marketplace_items" {
			return
		}
		reserved = true
		require.NoError(t, s.db.Exec("UPDATE marketplace_items SET stock = stock - 1 WHERE id = ?", item.ID).Error)
	}))

	w = s.request(http.MethodPatch, "/marketplace/"+item.ID, sellerToken, map[string]any{"price": 175})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.True(t, reserved)

	var stored models.MarketplaceItem
	require.NoError(t, s.db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 4, stored.Stock)
	assert.Equal(t, 175.0, stored.Price)
	assert.Equal(t, 4, decode[models.MarketplaceItem](t, w).Stock)
}
