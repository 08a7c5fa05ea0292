package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"comsiconnect/database"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type pushSubscription struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty"`
	UserID primitive.ObjectID   `bson:"userId"`
	Sub    webpush.Subscription `bson:"sub"`
}

var vapidPrivateKey string

func init() {
	if os.Getenv("VAPID_PUBLIC_KEY") == "" || os.Getenv("VAPID_PRIVATE_KEY") == "" {
		publicKey, privateKey, err := webpush.GenerateVAPIDKeys()
		if err != nil {
			log.Warn().Err(err).Msg("failed to generate VAPID keys")
			return
		}
		os.Setenv("VAPID_PUBLIC_KEY", publicKey)
		os.Setenv("VAPID_PRIVATE_KEY", privateKey)
		log.Warn().Msg("generated ephemeral VAPID keys; set VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY in production")
	}
	vapidPrivateKey = os.Getenv("VAPID_PRIVATE_KEY")
}

func GetVapidPublicKey(c *gin.Context) {
	publicKey := os.Getenv("VAPID_PUBLIC_KEY")
	if publicKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicKey": publicKey})
}

func SubscribePush(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	sub := pushSubscription{
		ID:     primitive.NewObjectID(),
		UserID: viewerID,
		Sub: webpush.Subscription{
			Endpoint: req.Endpoint,
			Keys: webpush.Keys{
				P256dh: req.Keys.P256dh,
				Auth:   req.Keys.Auth,
			},
		},
	}

	_, err := database.PushSubs.UpdateOne(ctx,
		bson.M{"userId": viewerID},
		bson.M{"$set": sub},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to save push subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push subscription saved"})
}

// notifyUser delivers a web push to the user's registered subscription, if
// any. Expired subscriptions (410) are pruned. Callers run it in a goroutine
// so delivery never blocks a request.
func notifyUser(userID primitive.ObjectID, title, body string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("push notification panic")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var sub pushSubscription
	err := database.PushSubs.FindOne(ctx, bson.M{"userId": userID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return
	}
	if err != nil {
		log.Error().Err(err).Str("user", userID.Hex()).Msg("push subscription lookup failed")
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"title":     title,
		"body":      body,
		"timestamp": time.Now().Unix(),
	})
	if err != nil {
		return
	}

	resp, err := webpush.SendNotification(payload, &sub.Sub, &webpush.Options{
		Subscriber:      "mailto:admin@comsiconnect.app",
		VAPIDPrivateKey: vapidPrivateKey,
		TTL:             30,
	})
	if err != nil {
		log.Warn().Err(err).Str("user", userID.Hex()).Msg("push delivery failed")
		if resp != nil && resp.StatusCode == http.StatusGone {
			if _, delErr := database.PushSubs.DeleteOne(ctx, bson.M{"userId": userID}); delErr != nil {
				log.Error().Err(delErr).Msg("failed to delete expired subscription")
			}
		}
		return
	}
	resp.Body.Close()
}
