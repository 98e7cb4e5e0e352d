package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/framestack/framestack_backend/configs"
	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/models"
)

// CapturePreviewImage renders the request's sample URL in headless Chrome,
// uploads the screenshot to Cloudinary, and stores the resulting URL on the
// website request. Best-effort: failures are logged, never surfaced to the
// admin request that triggered the capture.
func CapturePreviewImage(requestID uint) {
	var request models.WebsiteRequest
	if err := database.DB.First(&request, requestID).Error; err != nil {
		log.Printf("🔥 Preview capture: website request %d not found: %v", requestID, err)
		return
	}
	if request.SampleURL == nil || *request.SampleURL == "" {
		return
	}

	shot, err := captureScreenshot(*request.SampleURL)
	if err != nil {
		log.Printf("🔥 Failed to capture preview for request %d: %v", requestID, err)
		return
	}

	previewURL, err := uploadToCloudinary(shot, fmt.Sprintf("request_%d_preview", requestID))
	if err != nil {
		log.Printf("🔥 Failed to upload preview for request %d: %v", requestID, err)
		return
	}

	request.PreviewImageURL = &previewURL
	if err := database.DB.Save(&request).Error; err != nil {
		log.Printf("🔥 Failed to store preview URL for request %d: %v", requestID, err)
		return
	}
	log.Printf("✅ Stored preview image for website request %d", requestID)
}

func captureScreenshot(url string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	var buf []byte
	err := chromedp.Run(ctx,
		emulation.SetDeviceMetricsOverride(1280, 800, 1, false),
		chromedp.Navigate(url),
		chromedp.Sleep(2*time.Second),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func uploadToCloudinary(data []byte, publicID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", fmt.Errorf("failed to initialize Cloudinary: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   "website_previews",
		PublicID: publicID,
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
