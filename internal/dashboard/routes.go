package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	// Pages.
	router.GET("/", handleIndex(db))
	router.GET("/snapshots/:id", handleSnapshotDetail(db))

	// Read-only JSON API.
	router.GET("/api/snapshots", handleAPISnapshotList(db))
	router.GET("/api/snapshots/:id", handleAPISnapshot(db))
	router.GET("/api/snapshots/:id/ghosting", handleAPIGhosting(db))
}

func handleIndex(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := SnapshotList(db)
		if err != nil {
			c.String(http.StatusInternalServerError, "list snapshots: %v", err)
			return
		}
		c.HTML(http.StatusOK, "layout.html", gin.H{
			"page":      "index",
			"snapshots": rows,
		})
	}
}

func handleSnapshotDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := snapshotID(c)
		if err != nil {
			c.String(http.StatusBadRequest, "bad snapshot id")
			return
		}
		detail, err := GetSnapshotDetail(db, id, time.Now())
		if err != nil {
			c.String(http.StatusNotFound, "snapshot %d: %v", id, err)
			return
		}
		c.HTML(http.StatusOK, "layout.html", gin.H{
			"page":   "snapshot",
			"detail": detail,
		})
	}
}

func handleAPISnapshotList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := SnapshotList(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func handleAPISnapshot(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := snapshotID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad snapshot id"})
			return
		}
		analytics, err := LoadAnalytics(db, id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, analytics)
	}
}

func handleAPIGhosting(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := snapshotID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad snapshot id"})
			return
		}

		// Scores are window-relative; ?now= pins the reference instant.
		now := time.Now()
		if v := c.Query("now"); v != "" {
			parsed, err := time.Parse(time.RFC3339, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "now must be RFC 3339"})
				return
			}
			now = parsed
		}

		scores, err := GhostingScores(db, id, now)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, scores)
	}
}

func snapshotID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
