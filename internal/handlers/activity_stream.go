package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"fundcontrol/internal/models"
	dbconfig "fundcontrol/pkg/config"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer in front of this handler.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const activityPollInterval = 2 * time.Second

// StreamActivity pushes new activity rows to the admin console over a
// websocket. The client receives every row created after it connected, in
// insertion order.
func StreamActivity(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("activity stream: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Drain client frames so pings/close are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var lastID uint
	var latest models.Activity
	if err := dbconfig.DB.Order("id desc").First(&latest).Error; err == nil {
		lastID = latest.ID
	}

	ticker := time.NewTicker(activityPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			var rows []models.Activity
			err := dbconfig.DB.Where("id > ?", lastID).Order("id asc").Limit(100).Find(&rows).Error
			if err != nil {
				logger.Errorf("activity stream: query failed: %v", err)
				continue
			}
			for _, row := range rows {
				if err := conn.WriteJSON(row); err != nil {
					return
				}
				lastID = row.ID
			}
		}
	}
}

// ListActivity returns paginated activity rows, newest first
func ListActivity(c *gin.Context) {
	p := parsePagination(c, "id", "date", "type")

	query := dbconfig.DB.Model(&models.Activity{})
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if investmentID := c.Query("investment_id"); investmentID != "" {
		query = query.Where("investment_id = ?", investmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var rows []models.Activity
	if err := query.Order(p.Order()).Offset(p.Offset()).Limit(p.PageSize).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, paginated(rows, p, total))
}
