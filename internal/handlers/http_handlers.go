package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"dailydraw/internal/catalog"
	"dailydraw/internal/models"
	"dailydraw/internal/services"
	"dailydraw/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

// Options configures identity and admin checks.
type Options struct {
	IdentityHeader  string
	RequireIdentity bool
	AdminToken      string
}

// HTTPHandler holds the dependencies for the HTTP handlers.
type HTTPHandler struct {
	draws   *services.DrawService
	users   *services.UserService
	catalog *catalog.Service
	opts    Options
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(draws *services.DrawService, users *services.UserService, catalog *catalog.Service, opts Options) *HTTPHandler {
	if opts.IdentityHeader == "" {
		opts.IdentityHeader = "X-User-ID"
	}
	return &HTTPHandler{
		draws:   draws,
		users:   users,
		catalog: catalog,
		opts:    opts,
	}
}

// RegisterRoutes registers all the application routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	router.Use(RequestLogger())

	router.GET("/items", h.ListItems)
	router.GET("/items/:id", h.GetItem)
	router.POST("/items", h.AdminMiddleware(), h.AddItem)
	router.GET("/odds", h.GetOdds)

	router.POST("/users", h.RegisterUser)
	router.GET("/users/:id", h.GetUser)
	router.GET("/users/farcaster/:address", h.GetUserByFarcaster)
	router.GET("/users/wallet/:address", h.GetUserByWallet)

	scoped := router.Group("/")
	scoped.Use(h.IdentityMiddleware())
	scoped.PATCH("/users/:id/wallet", h.LinkWallet)
	scoped.PATCH("/users/:id/farcaster", h.LinkFarcaster)
	scoped.POST("/draws", h.PerformDraw)
	scoped.GET("/draws/user/:userId", h.ListDraws)
	scoped.GET("/draws/user/:userId/latest", h.LatestDraw)
	scoped.GET("/draws/user/:userId/today", h.CheckToday)
	scoped.GET("/draws/user/:userId/check-today", h.CheckToday)
	scoped.GET("/tallies/user/:userId", h.ListTallies)
}

type drawRequest struct {
	UserID int64  `json:"userId" binding:"required,gt=0"`
	ItemID *int64 `json:"itemId"`
}

type drawResponse struct {
	models.DrawWithItem
	Tally *models.CollectionTally `json:"tally,omitempty"`
}

type itemRequest struct {
	Name           string `json:"name" binding:"required"`
	Symbol         string `json:"symbol"`
	Meaning        string `json:"meaning"`
	Interpretation string `json:"interpretation"`
	Guidance       string `json:"guidance"`
	Rarity         string `json:"rarity" binding:"required"`
}

type userRequest struct {
	Username         string `json:"username" binding:"required"`
	FarcasterAddress string `json:"farcasterAddress"`
	WalletAddress    string `json:"walletAddress"`
}

type walletRequest struct {
	WalletAddress string `json:"walletAddress"`
}

type farcasterRequest struct {
	FarcasterAddress string `json:"farcasterAddress"`
}

// respondError maps service errors onto status codes. Storage details stay in
// the server log.
func (h *HTTPHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, services.ErrItemNotFound), errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
	case errors.Is(err, services.ErrNoDraws):
		c.JSON(http.StatusNotFound, gin.H{"message": "No draws found for this user"})
	case errors.Is(err, services.ErrEmptyCatalog):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "No items are available to draw"})
	case errors.Is(err, services.ErrClientSelectionDisabled):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Items are selected by the server"})
	case errors.Is(err, services.ErrInvalidUser), errors.Is(err, services.ErrAddressRequired), errors.Is(err, catalog.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "Username already exists"})
	case errors.Is(err, services.ErrAddressLinked):
		c.JSON(http.StatusConflict, gin.H{"message": "Address is already linked to another user"})
	case errors.Is(err, storage.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "Item already exists"})
	default:
		logger.Errorf("Request %s %s failed (request_id=%s): %v", c.Request.Method, c.Request.URL.Path, c.GetString(requestIDKey), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// pathID parses a positive integer path parameter, answering 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// ListItems returns the catalog, fuzzy-filtered by ?q= when given.
func (h *HTTPHandler) ListItems(c *gin.Context) {
	items, err := h.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem returns one catalog item.
func (h *HTTPHandler) GetItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddItem appends an item to the catalog.
func (h *HTTPHandler) AddItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and rarity are required"})
		return
	}

	item, err := h.catalog.Add(c.Request.Context(), models.Item{
		Name:           req.Name,
		Symbol:         req.Symbol,
		Meaning:        req.Meaning,
		Interpretation: req.Interpretation,
		Guidance:       req.Guidance,
		Rarity:         models.Rarity(req.Rarity),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetOdds returns the effective probability of each rarity tier.
func (h *HTTPHandler) GetOdds(c *gin.Context) {
	odds, err := h.draws.Odds(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, odds)
}

// PerformDraw handles the request to draw today's item.
func (h *HTTPHandler) PerformDraw(c *gin.Context) {
	var req drawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
		return
	}
	if !h.authorize(c, req.UserID) {
		return
	}

	outcome, err := h.draws.Draw(c.Request.Context(), services.DrawRequest{UserID: req.UserID, ItemID: req.ItemID})
	if err != nil {
		h.respondError(c, err)
		return
	}
	if outcome.Rejected() {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "You have already drawn today",
			"reason":  outcome.Reason,
		})
		return
	}

	c.JSON(http.StatusCreated, drawResponse{DrawWithItem: *outcome.Draw, Tally: outcome.Tally})
}

// ListDraws returns the draw history of a user, newest first.
func (h *HTTPHandler) ListDraws(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok || !h.authorize(c, userID) {
		return
	}
	draws, err := h.draws.History(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draws)
}

// LatestDraw returns the most recent draw of a user.
func (h *HTTPHandler) LatestDraw(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok || !h.authorize(c, userID) {
		return
	}
	draw, err := h.draws.Latest(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}

// CheckToday reports whether the user already drew today.
func (h *HTTPHandler) CheckToday(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok || !h.authorize(c, userID) {
		return
	}
	drawn, err := h.draws.HasDrawnToday(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasDrawnToday": drawn})
}

// ListTallies returns the collection counts of a user, highest first.
func (h *HTTPHandler) ListTallies(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok || !h.authorize(c, userID) {
		return
	}
	tallies, err := h.draws.Collection(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tallies)
}

// RegisterUser stores a user provisioned by the sign-in provider.
func (h *HTTPHandler) RegisterUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username is required"})
		return
	}
	user, err := h.users.Register(c.Request.Context(), req.Username, req.FarcasterAddress, req.WalletAddress)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *HTTPHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *HTTPHandler) GetUserByFarcaster(c *gin.Context) {
	user, err := h.users.GetByFarcaster(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *HTTPHandler) GetUserByWallet(c *gin.Context) {
	user, err := h.users.GetByWallet(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// LinkWallet attaches a wallet address to a user.
func (h *HTTPHandler) LinkWallet(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok || !h.authorize(c, id) {
		return
	}
	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WalletAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Wallet address is required"})
		return
	}
	user, err := h.users.LinkWallet(c.Request.Context(), id, req.WalletAddress)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// LinkFarcaster attaches a farcaster address to a user.
func (h *HTTPHandler) LinkFarcaster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok || !h.authorize(c, id) {
		return
	}
	var req farcasterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FarcasterAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Farcaster address is required"})
		return
	}
	user, err := h.users.LinkFarcaster(c.Request.Context(), id, req.FarcasterAddress)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
