package middlewares

import (
	"context"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"net/http"
	"os"
	"reelhive/database"
	"reelhive/models"
	"strings"
	"time"
)

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// fall back to the cookie set at login
	tokenString, err := c.Cookie("token")
	if err != nil {
		return ""
	}
	return tokenString
}

func userFromToken(tokenString string) (models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("SECRET_KEY")), nil
	})
	if err != nil {
		return models.User{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}, fmt.Errorf("invalid token claims")
	}

	// check if the token expired
	if exp, ok := claims["exp"].(float64); !ok || float64(time.Now().Unix()) > exp {
		return models.User{}, fmt.Errorf("token expired")
	}

	// check if the attached user exists
	userCollection := database.OpenCollection(database.Client, "user-collection")
	var user models.User
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = userCollection.FindOne(ctx, bson.M{"_id": claims["sub"]}).Decode(&user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func RequireAuth(c *gin.Context) {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := userFromToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	// set the user
	c.Set("user", user)
	c.Next()
}

// OptionalAuth loads the user when a valid token is present but lets
// anonymous requests through. Read endpoints use it to resolve isLiked
// and the personalized feed.
func OptionalAuth(c *gin.Context) {
	tokenString := tokenFromRequest(c)
	if tokenString != "" {
		if user, err := userFromToken(tokenString); err == nil {
			c.Set("user", user)
		}
	}
	c.Next()
}

// CurrentUser pulls the authenticated user out of the gin context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
