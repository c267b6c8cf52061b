package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/cmsadmin/internal/common"
)

// BannerType selects the placement of a banner on the public site.
type BannerType string

const (
	BannerTypeHomepage  BannerType = "homepage"
	BannerTypePlacement BannerType = "placement"
)

// BannerTypes lists the types in display order.
var BannerTypes = []BannerType{BannerTypeHomepage, BannerTypePlacement}

func ParseBannerType(s string) (BannerType, error) {
	t := BannerType(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(BannerTypes, t) {
		return "", common.NewValidationError(fmt.Sprintf("Unknown banner type %q, want one of %s", s, typeList()))
	}
	return t, nil
}

func typeList() string {
	names := make([]string, len(BannerTypes))
	for i, t := range BannerTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Title is the human label used in headings, e.g. "Homepage Banners".
func (t BannerType) Title() string {
	if t == "" {
		return "Banners"
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:]) + " Banners"
}

// Banner is a desktop/mobile image pair. Type is empty for records created
// before banner types existed.
type Banner struct {
	ID              ID         `json:"id"`
	Type            BannerType `json:"type,omitempty"`
	DesktopImageURL string     `json:"desktopImageUrl"`
	MobileImageURL  string     `json:"mobileImageUrl"`
}

// DesktopURLs and MobileURLs extract non-empty image URLs in list order.
func DesktopURLs(banners []Banner) []string {
	return collect(banners, func(b Banner) string { return b.DesktopImageURL })
}

func MobileURLs(banners []Banner) []string {
	return collect(banners, func(b Banner) string { return b.MobileImageURL })
}

func collect(banners []Banner, pick func(Banner) string) []string {
	urls := make([]string, 0, len(banners))
	for _, b := range banners {
		if u := pick(b); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// BannerUpload is the upload form: both images are required.
type BannerUpload struct {
	Type    BannerType
	Desktop *File
	Mobile  *File
}

func (u BannerUpload) Validate() error {
	if u.Desktop.Empty() || u.Mobile.Empty() {
		return common.NewValidationError("Please select both desktop and mobile images!")
	}
	if _, err := ParseBannerType(string(u.Type)); err != nil {
		return err
	}
	return nil
}
