package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/storage"

	"github.com/gin-gonic/gin"
)

// GetAllUsers lists registered buyers
// @Summary Get all users
// @Description List all registered buyer accounts. Admins only.
// @Tags Users
// @Produce json
// @Success 200 {array} models.LoginUser
// @Failure 500 {object} models.ErrorResponse
// @Router /api/users [get]
func GetAllUsers(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(`
			SELECT id, name, email, is_admin, suspended, company_name
			FROM users
			ORDER BY id
		`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
			return
		}
		defer rows.Close()

		type userRow struct {
			ID          int    `json:"id"`
			Name        string `json:"name"`
			Email       string `json:"email"`
			IsAdmin     bool   `json:"is_admin"`
			Suspended   bool   `json:"suspended"`
			CompanyName string `json:"company_name"`
		}

		users := []userRow{}
		for rows.Next() {
			var u userRow
			var companyName sql.NullString
			if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin, &u.Suspended, &companyName); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan user"})
				return
			}
			u.CompanyName = companyName.String
			users = append(users, u)
		}
		if err := rows.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to iterate users"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// SetUserSuspension suspends or reinstates a buyer
// @Summary Suspend or reinstate a user
// @Description Suspended users cannot log in or submit quotes. Admins only.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body object true "{\"suspended\":true}"
// @Success 200 {object} object
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id}/suspend [put]
func SetUserSuspension(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var req struct {
			Suspended *bool `json:"suspended" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "suspended is required"})
			return
		}

		res, err := db.Exec(`UPDATE users SET suspended = $1, updated_at = NOW() WHERE id = $2`, *req.Suspended, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		// Suspended users lose their live sessions immediately.
		if *req.Suspended {
			if _, err := db.Exec(`DELETE FROM session WHERE user_id = $1`, id); err != nil {
				log.Printf("Failed to clear sessions for suspended user %d: %v", id, err)
			}
		}

		action := "reinstated"
		if *req.Suspended {
			action = "suspended"
		}
		userName := "System"
		if user := currentUser(c); user != nil {
			userName = user.Name
		}
		if err := storage.SaveActivityLog(db, models.ActivityLog{
			CreatedAt:   time.Now(),
			UserName:    userName,
			EventName:   "user_" + action,
			Description: fmt.Sprintf("User %d %s", id, action),
			IPAddress:   c.ClientIP(),
		}); err != nil {
			log.Printf("Failed to save activity log for user %d: %v", id, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "User " + action})
	}
}
