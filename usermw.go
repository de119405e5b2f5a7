package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const cookieName = "wk_uid"

// EnsureUser creates or looks up the anonymous user bound to the browser
// cookie. Set secureCookies to true behind HTTPS.
func EnsureUser(db *gorm.DB, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		pubID, err := c.Cookie(cookieName)
		if err != nil || pubID == "" {
			// no cookie yet: mint a user and set one
			pubID = uuid.New().String()
			u := User{PublicID: pubID}
			if err := db.Create(&u).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "user create failed"})
				c.Abort()
				return
			}

			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cookieName,
				Value:    pubID,
				Path:     "/",
				MaxAge:   365 * 24 * 3600,
				HttpOnly: true,
				Secure:   secureCookies,
				SameSite: http.SameSiteLaxMode,
			})

			c.Set("userPublicID", pubID)
			c.Set("userDBID", u.ID)
			c.Next()
			return
		}

		// cookie present: make sure the user row still exists
		var u User
		if err := db.First(&u, "public_id = ?", pubID).Error; err != nil {
			u = User{PublicID: pubID}
			if err := db.Create(&u).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "user recreate failed"})
				c.Abort()
				return
			}
		}

		c.Set("userPublicID", pubID)
		c.Set("userDBID", u.ID)
		c.Next()
	}
}

// currentUser pulls the identity placed by EnsureUser off the context.
func currentUser(c *gin.Context) (uint, string, bool) {
	v, ok := c.Get("userDBID")
	if !ok {
		return 0, "", false
	}
	uid, ok := v.(uint)
	if !ok {
		return 0, "", false
	}
	p, _ := c.Get("userPublicID")
	pubID, _ := p.(string)
	return uid, pubID, pubID != ""
}
