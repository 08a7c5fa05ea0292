package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var errUploadsNotConfigured = errors.New("CLOUDINARY_URL not configured")

// uploadImages sends each attached file to Cloudinary and returns the stable
// secure URLs referenced from images[].
func uploadImages(ctx context.Context, files []*multipart.FileHeader, folder string) ([]string, error) {
	cloudURL := os.Getenv("CLOUDINARY_URL")
	if cloudURL == "" {
		return nil, errUploadsNotConfigured
	}

	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}

		res, err := cld.Upload.Upload(ctx, f, uploader.UploadParams{
			Folder:         folder,
			Transformation: "c_limit,w_1280,h_1280,q_auto",
		})
		f.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, res.SecureURL)
	}
	return urls, nil
}

// uploadAvatar stores a profile picture under a per-user public id so a new
// upload replaces the previous one.
func uploadAvatar(ctx context.Context, fh *multipart.FileHeader, userID string) (string, error) {
	cloudURL := os.Getenv("CLOUDINARY_URL")
	if cloudURL == "" {
		return "", errUploadsNotConfigured
	}

	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	res, err := cld.Upload.Upload(ctx, f, uploader.UploadParams{
		Folder:         "comsiconnect/avatars",
		PublicID:       userID,
		Transformation: "c_limit,w_400,h_400,q_auto",
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}
