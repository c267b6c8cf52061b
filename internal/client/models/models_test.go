package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/cmsadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	var got []Banner
	err := json.Unmarshal([]byte(`[{"id": 7}, {"id": "b-9"}]`), &got)
	require.NoError(t, err)
	assert.Equal(t, ID("7"), got[0].ID)
	assert.Equal(t, ID("b-9"), got[1].ID)

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

func TestParseBannerType(t *testing.T) {
	tests := []struct {
		in      string
		want    BannerType
		wantErr bool
	}{
		{in: "homepage", want: BannerTypeHomepage},
		{in: " Placement ", want: BannerTypePlacement},
		{in: "sidebar", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBannerType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrorValidation)
				assert.ErrorContains(t, err, "want one of homepage, placement")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBannerType_Title(t *testing.T) {
	assert.Equal(t, "Homepage Banners", BannerTypeHomepage.Title())
	assert.Equal(t, "Placement Banners", BannerTypePlacement.Title())
	assert.Equal(t, "Banners", BannerType("").Title())
}

func TestImageURLs_SkipEmpty(t *testing.T) {
	banners := []Banner{
		{ID: "1", DesktopImageURL: "d1", MobileImageURL: "m1"},
		{ID: "2", DesktopImageURL: "", MobileImageURL: "m2"},
		{ID: "3", DesktopImageURL: "d3"},
	}
	assert.Equal(t, []string{"d1", "d3"}, DesktopURLs(banners))
	assert.Equal(t, []string{"m1", "m2"}, MobileURLs(banners))
	assert.Empty(t, DesktopURLs(nil))
}

func TestBannerUpload_Validate(t *testing.T) {
	img := &File{Name: "a.jpg", Data: []byte{0xff, 0xd8}}

	assert.NoError(t, BannerUpload{Type: BannerTypeHomepage, Desktop: img, Mobile: img}.Validate())

	err := BannerUpload{Type: BannerTypeHomepage, Desktop: img}.Validate()
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "Please select both desktop and mobile images!")

	err = BannerUpload{Type: BannerTypeHomepage, Desktop: &File{Name: "empty"}, Mobile: img}.Validate()
	assert.ErrorIs(t, err, common.ErrorValidation)

	err = BannerUpload{Type: "footer", Desktop: img, Mobile: img}.Validate()
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestNewsUpload_Validate(t *testing.T) {
	ok := NewsUpload{Title: "T", Description: "D", Author: "A"}
	assert.NoError(t, ok.Validate())

	for _, bad := range []NewsUpload{
		{Description: "D", Author: "A"},
		{Title: "T", Description: "   ", Author: "A"},
		{Title: "T", Description: "D"},
	} {
		err := bad.Validate()
		require.ErrorIs(t, err, common.ErrorValidation)
		assert.Contains(t, err.Error(), "All fields except PDF are required!")
	}
}

func TestNews_AttachmentURL(t *testing.T) {
	n := News{PDFURL: "https://res.example.com/raw/upload/v1/report.pdf"}
	assert.True(t, n.HasPDF())
	assert.Equal(t, "https://res.example.com/raw/upload/fl_attachment/v1/report.pdf", n.AttachmentURL())

	plain := News{PDFURL: "https://files.example.com/report.pdf"}
	assert.Equal(t, plain.PDFURL, plain.AttachmentURL())

	assert.False(t, News{}.HasPDF())
}

func TestNews_JSON(t *testing.T) {
	var n News
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 12, "title": "Open day", "description": "d", "author": "Dean",
		"date": "2025-11-02", "pdfUrl": "https://x/y.pdf", "publicId": "news/y"
	}`), &n))
	assert.Equal(t, News{ID: "12", Title: "Open day", Description: "d", Author: "Dean",
		Date: "2025-11-02", PDFURL: "https://x/y.pdf", PublicID: "news/y"}, n)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desktop.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	f, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "desktop.png", f.Name)
	assert.False(t, f.Empty())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	var none *File
	assert.True(t, none.Empty())
}
