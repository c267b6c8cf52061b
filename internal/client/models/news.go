package models

import (
	"strings"

	"github.com/dmitrijs2005/cmsadmin/internal/common"
)

// News is a published article with an optional PDF attachment.
type News struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	PDFURL      string `json:"pdfUrl,omitempty"`
	PublicID    string `json:"publicId,omitempty"`
}

func (n News) HasPDF() bool {
	return n.PDFURL != ""
}

// AttachmentURL is the URL used to fetch the PDF for viewing. Storage URLs
// containing "/upload/" get the fl_attachment flag so the raw file is
// served instead of a rendered page.
func (n News) AttachmentURL() string {
	if strings.Contains(n.PDFURL, "/upload/") {
		return strings.Replace(n.PDFURL, "/upload/", "/upload/fl_attachment/", 1)
	}
	return n.PDFURL
}

// NewsUpload is the news upload form. The PDF is optional.
type NewsUpload struct {
	Title       string
	Description string
	Author      string
	PDF         *File
}

func (u NewsUpload) Validate() error {
	if strings.TrimSpace(u.Title) == "" ||
		strings.TrimSpace(u.Description) == "" ||
		strings.TrimSpace(u.Author) == "" {
		return common.NewValidationError("All fields except PDF are required!")
	}
	return nil
}
