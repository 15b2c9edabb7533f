package helper

import (
	"context"
	"errors"
	"go.mongodb.org/mongo-driver/bson"
	"reelhive/database"
	"reelhive/models"
	"time"
)

func GetUserByEmail(email string) (models.User, error) {
	var user models.User

	filter := bson.M{"email": email}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	userCollection := database.OpenCollection(database.Client, "user-collection")
	err := userCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return models.User{}, errors.New("user not found")
	}
	return user, nil
}

func GetUserById(id string) (models.User, error) {
	var user models.User
	filter := bson.M{"_id": id}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	userCollection := database.OpenCollection(database.Client, "user-collection")
	err := userCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return models.User{}, errors.New("user not found")
	}
	return user, nil
}

func GetUserByUsername(username string) (models.User, error) {
	var user models.User
	filter := bson.M{"username": username}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	userCollection := database.OpenCollection(database.Client, "user-collection")
	err := userCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return models.User{}, errors.New("user not found")
	}
	return user, nil
}

// GetPublicUsers batch-loads the public profile fields for a set of
// user ids, keyed by id. Missing ids are simply absent from the map.
func GetPublicUsers(ids []string) (map[string]models.PublicUser, error) {
	result := make(map[string]models.PublicUser, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	userCollection := database.OpenCollection(database.Client, "user-collection")
	cursor, err := userCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, user := range users {
		result[user.ID] = user.ToPublicUser()
	}
	return result, nil
}
