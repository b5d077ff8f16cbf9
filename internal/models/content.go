// internal/models/content.go
package models

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Slugify lowercases s and joins its alphanumeric runs with hyphens, capped at max runes.
func Slugify(s string, max int) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteRune('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if runes := []rune(slug); max > 0 && len(runes) > max {
		slug = strings.TrimSuffix(string(runes[:max]), "-")
	}
	return slug
}

// About

type AboutPage struct {
	BaseModel
	HeroImage    string `json:"hero_image" gorm:"size:512"`
	OverlayTitle string `json:"overlay_title" gorm:"size:200;not null"`
	OverlayText  string `json:"overlay_text" gorm:"size:400"`
	BodyText     string `json:"body_text" gorm:"type:text"`
	IsActive     bool   `json:"is_active" gorm:"not null;index"`
	SortOrder    int    `json:"order" gorm:"not null;default:0"`
}

func (a *AboutPage) ResolveMedia(resolve MediaResolver) {
	a.HeroImage = resolve(a.HeroImage)
}

type AboutCard struct {
	BaseModel
	Title       string `json:"title" gorm:"size:120;not null"`
	Slug        string `json:"slug" gorm:"size:140;uniqueIndex"`
	Image       string `json:"image" gorm:"size:512"`
	Description string `json:"description" gorm:"type:text"`
	Link        string `json:"link" gorm:"size:255"`
	SortOrder   int    `json:"order" gorm:"not null;default:0"`
}

func (a *AboutCard) BeforeSave(tx *gorm.DB) error {
	if a.Slug == "" {
		a.Slug = Slugify(a.Title, 140)
	}
	return nil
}

func (a *AboutCard) ResolveMedia(resolve MediaResolver) {
	a.Image = resolve(a.Image)
}

type AboutHighlight struct {
	BaseModel
	Title     string `json:"title" gorm:"size:200"`
	BodyText  string `json:"body_text" gorm:"type:text"`
	Image     string `json:"image" gorm:"size:512"`
	IsActive  bool   `json:"is_active" gorm:"not null;index"`
	SortOrder int    `json:"order" gorm:"not null;default:0"`
}

func (a *AboutHighlight) ResolveMedia(resolve MediaResolver) {
	a.Image = resolve(a.Image)
}

// Home

type HomeCategory struct {
	BaseModel
	Title       string `json:"title" gorm:"size:100;not null"`
	Slug        string `json:"slug" gorm:"size:140;uniqueIndex"`
	Image       string `json:"image" gorm:"size:512"`
	Description string `json:"description" gorm:"type:text"`
}

func (h *HomeCategory) BeforeSave(tx *gorm.DB) error {
	if h.Slug == "" {
		h.Slug = Slugify(h.Title, 140)
	}
	return nil
}

func (h *HomeCategory) ResolveMedia(resolve MediaResolver) {
	h.Image = resolve(h.Image)
}

type PromoBanner struct {
	BaseModel
	Title        string `json:"title" gorm:"size:255;not null"`
	Subtitle     string `json:"subtitle" gorm:"type:text"`
	ButtonText   string `json:"button_text" gorm:"size:50;default:'Shop & Save'"`
	DiscountText string `json:"discount_text" gorm:"size:50;default:'Save 35%'"`
	Image        string `json:"image" gorm:"size:512"`
	Link         string `json:"link" gorm:"size:255"`
}

func (p *PromoBanner) ResolveMedia(resolve MediaResolver) {
	p.Image = resolve(p.Image)
}

type OfferStrip struct {
	BaseModel
	Title           string `json:"title" gorm:"size:255;not null"`
	Subtitle        string `json:"subtitle" gorm:"type:text"`
	ProductImage    string `json:"product_image" gorm:"size:512"`
	ButtonText      string `json:"button_text" gorm:"size:64;default:'Shop Now'"`
	Link            string `json:"link" gorm:"size:255"`
	BackgroundColor string `json:"background_color" gorm:"size:20;default:'#9fffae'"`
	TextColor       string `json:"text_color" gorm:"size:20;default:'#000000'"`
	SortOrder       int    `json:"order" gorm:"not null;default:0"`
}

func (o *OfferStrip) ResolveMedia(resolve MediaResolver) {
	o.ProductImage = resolve(o.ProductImage)
}

// PetService is a home-page service card.
type PetService struct {
	BaseModel
	Title            string `json:"title" gorm:"size:120;not null"`
	Slug             string `json:"slug" gorm:"size:140;uniqueIndex"`
	ShortDescription string `json:"short_description" gorm:"type:text"`
	PromoText        string `json:"promo_text" gorm:"size:160"`
	Image            string `json:"image" gorm:"size:512"`
	SortOrder        int    `json:"order" gorm:"not null;default:0"`
}

func (p *PetService) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title, 140)
	}
	return nil
}

func (p *PetService) ResolveMedia(resolve MediaResolver) {
	p.Image = resolve(p.Image)
}

type CarouselBanner1 struct {
	BaseModel
	Title      string `json:"title" gorm:"size:255;not null"`
	Subtitle   string `json:"subtitle" gorm:"size:255"`
	ButtonText string `json:"button_text" gorm:"size:100;default:'Shop Now'"`
	Link       string `json:"link" gorm:"size:512"`
	Image      string `json:"image" gorm:"size:512"`
	RightImage string `json:"right_image" gorm:"size:512"`
	IsActive   bool   `json:"is_active" gorm:"not null;index"`
}

func (CarouselBanner1) TableName() string {
	return "carousal_banner1"
}

func (b *CarouselBanner1) ResolveMedia(resolve MediaResolver) {
	b.Image = resolve(b.Image)
	b.RightImage = resolve(b.RightImage)
}

type CarouselBanner2 struct {
	BaseModel
	LeftImage    string `json:"left_image" gorm:"size:512"`
	RightImage   string `json:"right_image" gorm:"size:512"`
	RibbonText   string `json:"ribbon_text" gorm:"size:255"`
	OverlayTitle string `json:"overlay_title" gorm:"type:text"`
	OverlayBody  string `json:"overlay_body" gorm:"type:text"`
	ButtonText   string `json:"button_text" gorm:"size:128"`
	ButtonLink   string `json:"button_link" gorm:"size:500"`
	SortOrder    int    `json:"order" gorm:"not null;default:0"`
	Active       bool   `json:"active" gorm:"not null;index"`
}

func (CarouselBanner2) TableName() string {
	return "carousal_banner2"
}

func (b *CarouselBanner2) ResolveMedia(resolve MediaResolver) {
	b.LeftImage = resolve(b.LeftImage)
	b.RightImage = resolve(b.RightImage)
}

type CarouselBanner3 struct {
	BaseModel
	LeftImage1  string `json:"left_image_1" gorm:"column:left_image_1;size:512"`
	LeftImage2  string `json:"left_image_2" gorm:"column:left_image_2;size:512"`
	RightImage  string `json:"right_image" gorm:"size:512"`
	DiamondText string `json:"diamond_text" gorm:"size:255"`
	SaveText    string `json:"save_text" gorm:"size:128"`
	ButtonText  string `json:"button_text" gorm:"size:128"`
	ButtonLink  string `json:"button_link" gorm:"size:512"`
	BgColor     string `json:"bg_color" gorm:"size:20;default:'#98FB98'"`
	SortOrder   int    `json:"order" gorm:"not null;default:0"`
	Active      bool   `json:"active" gorm:"not null;index"`
}

func (CarouselBanner3) TableName() string {
	return "carousal_banner3"
}

func (b *CarouselBanner3) ResolveMedia(resolve MediaResolver) {
	b.LeftImage1 = resolve(b.LeftImage1)
	b.LeftImage2 = resolve(b.LeftImage2)
	b.RightImage = resolve(b.RightImage)
}

// Core

type MegaMenu struct {
	BaseModel
	Key        string `json:"key" gorm:"size:100;uniqueIndex;not null"`
	Title      string `json:"title" gorm:"size:200;default:'Untitled Menu'"`
	TitleURL   string `json:"title_url" gorm:"size:500"`
	SortOrder  int    `json:"order" gorm:"not null;default:0"`
	LeftImage  string `json:"left_image" gorm:"size:512"`
	RightImage string `json:"right_image" gorm:"size:512"`

	Sections []MegaMenuSection `json:"sections" gorm:"foreignKey:MegaMenuID;constraint:OnDelete:CASCADE"`
	Brands   []MegaMenuBrand   `json:"brands" gorm:"foreignKey:MegaMenuID;constraint:OnDelete:CASCADE"`
}

func (m *MegaMenu) ResolveMedia(resolve MediaResolver) {
	m.LeftImage = resolve(m.LeftImage)
	m.RightImage = resolve(m.RightImage)
	for i := range m.Brands {
		m.Brands[i].Image = resolve(m.Brands[i].Image)
	}
}

type MegaMenuSection struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	MegaMenuID uint   `json:"-" gorm:"not null;index"`
	Title      string `json:"title" gorm:"size:200;not null"`
	Path       string `json:"path" gorm:"size:300"`
	SortOrder  int    `json:"order" gorm:"not null;default:0"`

	Categories []MegaMenuCategory `json:"categories" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

type MegaMenuCategory struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	SectionID uint   `json:"-" gorm:"not null;index"`
	Name      string `json:"name" gorm:"size:200;not null"`
	SortOrder int    `json:"order" gorm:"not null;default:0"`
}

type MegaMenuBrand struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	MegaMenuID uint   `json:"-" gorm:"not null;index"`
	Name       string `json:"name" gorm:"size:200;not null"`
	Image      string `json:"image" gorm:"size:512"`
	SortOrder  int    `json:"order" gorm:"not null;default:0"`
}

// SiteSettings holds a single row of storefront-wide settings.
type SiteSettings struct {
	BaseModel
	SiteName      string `json:"site_name" gorm:"size:100;default:'PetPalooza'"`
	Phone         string `json:"phone" gorm:"size:30"`
	Email         string `json:"email" gorm:"size:255"`
	Logo          string `json:"logo" gorm:"size:512"`
	TopBarEnabled bool   `json:"top_bar_enabled" gorm:"not null"`
}

func (s *SiteSettings) ResolveMedia(resolve MediaResolver) {
	s.Logo = resolve(s.Logo)
}

// Contact

type ContactMessage struct {
	BaseModel
	Name    string        `json:"name" gorm:"size:255;not null"`
	Email   string        `json:"email" gorm:"size:255;not null"`
	Phone   string        `json:"phone" gorm:"size:32"`
	Subject string        `json:"subject" gorm:"size:255"`
	Message string        `json:"message" gorm:"type:text;not null"`
	Status  ContactStatus `json:"status" gorm:"type:varchar(16);not null;default:'new';index"`
}

// Pet services

type PetServiceLanding struct {
	BaseModel
	LeftBanner  string `json:"left_banner" gorm:"size:512"`
	RightBanner string `json:"right_banner" gorm:"size:512"`
	Logo        string `json:"logo" gorm:"size:512"`
}

func (p *PetServiceLanding) ResolveMedia(resolve MediaResolver) {
	p.LeftBanner = resolve(p.LeftBanner)
	p.RightBanner = resolve(p.RightBanner)
	p.Logo = resolve(p.Logo)
}

type PetServicesPage struct {
	BaseModel
	Title                string `json:"title" gorm:"size:200;default:'Pet Services'"`
	IntroText            string `json:"intro_text" gorm:"type:text"`
	CustomerServiceTitle string `json:"customer_service_title" gorm:"size:80;default:'customer service'"`
	CustomerPhone        string `json:"customer_phone" gorm:"size:40"`
	PromoLeftTitle       string `json:"promo_left_title" gorm:"size:120"`
	PromoLeftSubtitle    string `json:"promo_left_subtitle" gorm:"type:text"`
	PromoLeftButton      string `json:"promo_left_button" gorm:"size:40"`
	CenterImage          string `json:"center_image" gorm:"size:512"`
	PromoRightTitle      string `json:"promo_right_title" gorm:"size:120"`
	PromoRightText       string `json:"promo_right_text" gorm:"type:text"`
	PromoRightButton     string `json:"promo_right_button" gorm:"size:40"`

	Cards []ServiceCard `json:"cards" gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
}

func (p *PetServicesPage) ResolveMedia(resolve MediaResolver) {
	p.CenterImage = resolve(p.CenterImage)
}

type ServiceCard struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	PageID     uint   `json:"page" gorm:"not null;index"`
	Title      string `json:"title" gorm:"size:200"`
	Content    string `json:"content" gorm:"type:text"`
	ButtonText string `json:"button_text" gorm:"size:60"`
	SortOrder  int    `json:"order" gorm:"not null;default:0"`
}

type ConsultPage struct {
	BaseModel
	Banner         string `json:"banner" gorm:"size:512"`
	OverlayTitle   string `json:"overlay_title" gorm:"size:255"`
	OverlayText    string `json:"overlay_text" gorm:"type:text"`
	OverlayCTAText string `json:"overlay_cta_text" gorm:"size:100;default:'Consult Now'"`
	CTATopImage    string `json:"cta_top_image" gorm:"size:512"`
	CTAText        string `json:"cta_text" gorm:"size:255"`
	CTAButtonText  string `json:"cta_button_text" gorm:"size:100;default:'Consult Now'"`
}

func (p *ConsultPage) ResolveMedia(resolve MediaResolver) {
	p.Banner = resolve(p.Banner)
	p.CTATopImage = resolve(p.CTATopImage)
}

type VetDoctor struct {
	BaseModel
	Name        string `json:"name" gorm:"size:200;not null"`
	ShortTitle  string `json:"short_title" gorm:"size:200"`
	Photo       string `json:"photo" gorm:"size:512"`
	Description string `json:"description" gorm:"type:text"`
	SortOrder   int    `json:"order" gorm:"not null;default:0"`
}

func (v *VetDoctor) ResolveMedia(resolve MediaResolver) {
	v.Photo = resolve(v.Photo)
}

type BookingService struct {
	BaseModel
	Banner           string          `json:"banner" gorm:"size:512"`
	Feature1         string          `json:"feature_1" gorm:"column:feature_1;size:120;default:'Pay & book the consultant'"`
	Feature2         string          `json:"feature_2" gorm:"column:feature_2;size:120;default:'Choose video or Teleconsultation'"`
	Feature3         string          `json:"feature_3" gorm:"column:feature_3;size:120;default:'Receive prescription after the call'"`
	OverlayTitle     string          `json:"overlay_title" gorm:"size:255;default:'Instant and complete vet care'"`
	OverlayText      string          `json:"overlay_text" gorm:"type:text"`
	OverlayCTAText   string          `json:"overlay_cta_text" gorm:"size:100;default:'Consult Now'"`
	Price            decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;default:299"`
	MRP              decimal.Decimal `json:"mrp" gorm:"type:decimal(10,2);not null;default:499"`
	DiscountText     string          `json:"discount_text" gorm:"size:100;default:'40% OFF'"`
	OffersText       string          `json:"offers_text" gorm:"size:255;default:'Bank offers and coupons'"`
	OffersButtonText string          `json:"offers_button_text" gorm:"size:80;default:'Check offers'"`
	CODInfo          string          `json:"cod_info" gorm:"size:255"`
	DeliveryInfo     string          `json:"delivery_info" gorm:"size:255"`
	AddToCartText    string          `json:"add_to_cart_text" gorm:"size:80;default:'Add to cart'"`
	Rating           decimal.Decimal `json:"rating" gorm:"type:decimal(3,1);not null;default:5"`
}

func (b *BookingService) ResolveMedia(resolve MediaResolver) {
	b.Banner = resolve(b.Banner)
}
