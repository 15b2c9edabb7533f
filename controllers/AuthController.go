package controllers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"reelhive/database"
	"reelhive/middlewares"
	"reelhive/models"
)

var validate = validator.New()
var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user-collection")

const tokenLifetime = time.Hour * 24 * 30

func generateToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}

func Register(c *gin.Context) {
	var body struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		ID:          uuid.New().String(),
		Username:    body.Username,
		Email:       body.Email,
		Password:    body.Password,
		DisplayName: body.DisplayName,
		Followers:   []string{},
		Following:   []string{},
		LastActive:  time.Now().UTC(),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	// validate user model
	if validationErr := validate.Struct(user); validationErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return
	}

	// check whether same email or username exists
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var foundUser models.User
	err := userCollection.FindOne(ctx, bson.M{
		"$or": []bson.M{{"email": user.Email}, {"username": user.Username}},
	}).Decode(&foundUser)
	if err == nil {
		if foundUser.Email == user.Email {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		}
		return
	}

	// hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during registration"})
		return
	}
	user.Password = string(hashedPassword)

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during registration"})
		return
	}

	tokenString, err := generateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during registration"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", tokenString, int(tokenLifetime.Seconds()), "/", "", false, true)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   tokenString,
		"user":    user.ToProfileJSON(),
	})
}

func Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	// login by email or username
	var foundUser models.User
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := userCollection.FindOne(ctx, bson.M{
		"$or": []bson.M{{"email": body.Email}, {"username": body.Email}},
	}).Decode(&foundUser)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	_, err = userCollection.UpdateOne(ctx, bson.M{"_id": foundUser.ID},
		bson.M{"$set": bson.M{"lastActive": time.Now().UTC()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during login"})
		return
	}

	tokenString, err := generateToken(foundUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during login"})
		return
	}

	// send jwt-token in cookie as well
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", tokenString, int(tokenLifetime.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   tokenString,
		"user":    foundUser.ToProfileJSON(),
	})
}

func Me(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToProfileJSON()})
}

func VerifyToken(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": user.ToProfileJSON()})
}

func Logout(c *gin.Context) {
	if user, ok := middlewares.CurrentUser(c); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		userCollection.UpdateOne(ctx, bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"lastActive": time.Now().UTC()}})
	}

	// Clear the JWT token by setting the cookie with an expired time
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
