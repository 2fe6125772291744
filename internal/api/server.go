package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/events"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/match"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage"
)

// Service exposes the catalog and the event store over HTTP
type Service struct {
	eventStore storage.EventStore
	catalog    storage.Catalog
	searcher   *match.Searcher
	logger     *zap.Logger
}

func NewService(eventStore storage.EventStore, catalog storage.Catalog, logger *zap.Logger) *Service {
	searcher := match.NewSearcher(match.FuncSource{
		Substring: catalog.SearchArtistNames,
		All:       catalog.ListArtistNames,
	}, logger)

	return &Service{
		eventStore: eventStore,
		catalog:    catalog,
		searcher:   searcher,
		logger:     logger,
	}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	r.GET("/health", s.HealthCheck)
	r.GET("/artists", s.ListArtists)
	r.POST("/artists", s.CreateArtist)
	r.GET("/search", s.SearchArtists)
	r.GET("/events", s.ListEvents)
	r.GET("/cities", s.ListCities)
	r.GET("/users/:id/favorites", s.ListFavorites)
	r.POST("/users/:id/favorites", s.CreateFavorite)
	r.DELETE("/users/:id/favorites/:artist", s.DeleteFavorite)
	r.GET("/users/:id/regions", s.GetRegions)
	r.PUT("/users/:id/regions", s.PutRegions)
}

func (s *Service) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "event-api",
	})
}

func (s *Service) ListArtists(c *gin.Context) {
	names, err := s.catalog.ListArtistNames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list artists",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artists": names})
}

type createArtistRequest struct {
	Name  string `json:"name"`
	Genre string `json:"genre"`
}

func (s *Service) CreateArtist(c *gin.Context) {
	var req createArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid artist data",
			"details": err.Error(),
		})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required field: name",
		})
		return
	}

	if err := s.catalog.UpsertArtist(c.Request.Context(), req.Name, req.Genre); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to save artist",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": req.Name, "genre": req.Genre})
}

func (s *Service) SearchArtists(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required query parameter: q",
		})
		return
	}

	names, err := s.searcher.Search(c.Request.Context(), query, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Search failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": names})
}

func (s *Service) ListEvents(c *gin.Context) {
	city := c.Query("city")
	category := c.Query("category")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required query parameter: city",
		})
		return
	}

	rows, err := s.eventStore.ListEventRows(c.Request.Context(), city, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list events",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"city":     city,
		"category": category,
		"events":   events.Aggregate(rows),
	})
}

func (s *Service) ListCities(c *gin.Context) {
	country := c.Query("country")

	cities, err := s.eventStore.ListCities(c.Request.Context(), country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list cities",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return 0, false
	}
	return id, true
}

func (s *Service) ListFavorites(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	favorites, err := s.catalog.ListUserFavorites(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list favorites",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

type createFavoriteRequest struct {
	Artist  string   `json:"artist"`
	Regions []string `json:"regions"`
}

func (s *Service) CreateFavorite(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req createFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid favorite data",
			"details": err.Error(),
		})
		return
	}

	if req.Artist == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required field: artist",
		})
		return
	}

	fav := models.Favorite{
		UserID:  userID,
		Artist:  req.Artist,
		Regions: req.Regions,
	}
	if err := s.catalog.AddFavorite(c.Request.Context(), fav); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to save favorite",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, fav)
}

func (s *Service) DeleteFavorite(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	artist := c.Param("artist")
	if err := s.catalog.RemoveFavorite(c.Request.Context(), userID, artist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete favorite",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorite deleted successfully",
	})
}

func (s *Service) GetRegions(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := s.catalog.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch user",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"regions": user.Regions})
}

type putRegionsRequest struct {
	Regions []string `json:"regions"`
}

func (s *Service) PutRegions(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req putRegionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid region data",
			"details": err.Error(),
		})
		return
	}

	if len(req.Regions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required field: regions",
		})
		return
	}

	if _, err := s.catalog.GetUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch user",
			"details": err.Error(),
		})
		return
	}

	if err := s.catalog.SetUserRegions(c.Request.Context(), userID, req.Regions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to save regions",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"regions": req.Regions})
}
