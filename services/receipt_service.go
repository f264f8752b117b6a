package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/anjiri1684/job_portal/configs"
	"github.com/anjiri1684/job_portal/database"
	"github.com/anjiri1684/job_portal/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// PDFReceiptService renders an application-fee receipt to PDF and stores the
// upload URL on the payment record. Everything here is best-effort: a receipt
// that fails to render never affects the payment itself.
type PDFReceiptService struct{}

func (PDFReceiptService) GenerateReceipt(paymentID uuid.UUID) {
	var payment models.Payment
	if err := database.DB.Preload("Job").Preload("Applicant").First(&payment, "id = ?", paymentID).Error; err != nil {
		log.Printf("🔥 Receipt generation: payment %s not found: %v", paymentID, err)
		return
	}

	if payment.Status != models.PaymentSuccess {
		return
	}

	htmlData, err := generateReceiptHTML(&payment)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt HTML for payment %s: %v", paymentID, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for payment %s: %v", paymentID, err)
		return
	}

	uploadURL, err := uploadReceiptToCloudinary(pdfBytes, payment.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for payment %s: %v", paymentID, err)
		return
	}

	if err := database.DB.Model(&models.Payment{}).Where("id = ?", payment.ID).Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to save receipt URL for payment %s: %v", paymentID, err)
		return
	}

	log.Printf("✅ Generated receipt for payment %s.", paymentID)
}

func generateReceiptHTML(payment *models.Payment) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	var providerPaymentID string
	if payment.ProviderPaymentID != nil {
		providerPaymentID = *payment.ProviderPaymentID
	}

	data := struct {
		ApplicantName     string
		JobTitle          string
		Amount            string
		ProviderPaymentID string
		PaidAt            string
	}{
		ApplicantName:     payment.Applicant.FullName,
		JobTitle:          payment.Job.Title,
		Amount:            fmt.Sprintf("%.2f %s", payment.Amount, payment.Currency),
		ProviderPaymentID: providerPaymentID,
		PaidAt:            payment.UpdatedAt.Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceiptToCloudinary(fileBytes []byte, paymentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s", paymentID),
		Folder:       "job_portal_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
