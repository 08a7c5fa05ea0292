package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"comsiconnect/database"
	"comsiconnect/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxPostImages = 5

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// viewerObjectID resolves the authenticated caller id set by the JWT
// middleware. Replies 401 itself when the id is missing or malformed.
func viewerObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

type postBody struct {
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

// readPostBody accepts either a multipart form (files uploaded to the given
// folder) or a JSON body with pre-uploaded image URLs. Error responses are
// written here; callers bail out when ok is false.
func readPostBody(c *gin.Context, folder string) (content string, images []string, ok bool) {
	ctx, cancel := opCtx()
	defer cancel()

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
			return "", nil, false
		}
		content = c.PostForm("content")
		files := form.File["images"]
		if len(files) > maxPostImages {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At most 5 images per post"})
			return "", nil, false
		}
		if len(files) > 0 {
			images, err = uploadImages(ctx, files, folder)
			if err != nil {
				log.Error().Err(err).Msg("image upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload images"})
				return "", nil, false
			}
		}
	} else {
		var req postBody
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return "", nil, false
		}
		content = req.Content
		images = req.Images
	}

	if strings.TrimSpace(content) == "" && len(images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post needs content or at least one image"})
		return "", nil, false
	}
	if len(images) > maxPostImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At most 5 images per post"})
		return "", nil, false
	}
	if images == nil {
		images = []string{}
	}
	return content, images, true
}

func loadUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// loadUsersByID fetches every listed user in one query and keys them by id.
// Missing ids are simply absent from the map.
func loadUsersByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := database.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}
