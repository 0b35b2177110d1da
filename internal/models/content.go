package models

import "time"

// PortfolioItem is a completed project shown in the portfolio section.
type PortfolioItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Client      string    `json:"client"`
	Duration    string    `json:"duration"`
	Workers     int       `json:"workers" validate:"gte=0"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ServiceItem is one offered service card.
type ServiceItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Features    []string  `json:"features"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FaqItem is a question and answer pair.
type FaqItem struct {
	ID         string    `json:"id"`
	Question   string    `json:"question" validate:"required"`
	Answer     string    `json:"answer" validate:"required"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DocumentSection is a titled block of paragraphs in a legal document.
type DocumentSection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// Document is one legal document made of sections.
type Document struct {
	Sections []DocumentSection `json:"sections"`
}

// Documents holds the privacy policy and the public offer.
type Documents struct {
	Privacy Document `json:"privacy"`
	Offer   Document `json:"offer"`
}

// Document types accepted by the public documents endpoint
const (
	DocumentTypePrivacy = "privacy"
	DocumentTypeOffer   = "offer"
)

// DefaultDocuments returns empty privacy and offer documents.
func DefaultDocuments() Documents {
	return Documents{
		Privacy: Document{Sections: []DocumentSection{}},
		Offer:   Document{Sections: []DocumentSection{}},
	}
}

// ByType returns the document for the given type.
func (d Documents) ByType(docType string) (Document, bool) {
	switch docType {
	case DocumentTypePrivacy:
		return d.Privacy, true
	case DocumentTypeOffer:
		return d.Offer, true
	}
	return Document{}, false
}

// SiteSettings is the site-wide configuration edited from the admin panel.
type SiteSettings struct {
	Company struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Slogan      string `json:"slogan"`
	} `json:"company"`
	Contacts struct {
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
	} `json:"contacts"`
	Social struct {
		Telegram  string `json:"telegram"`
		WhatsApp  string `json:"whatsapp"`
		VK        string `json:"vk"`
		Instagram string `json:"instagram"`
	} `json:"social"`
	Hero struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
	} `json:"hero"`
	Meta struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"meta"`
	Logo struct {
		URL     string `json:"url"`
		Enabled bool   `json:"enabled"`
	} `json:"logo"`
	Form         Toggle          `json:"form"`
	WorkingHours Toggle          `json:"workingHours"`
	Visibility   VisibilityFlags `json:"visibility"`
	Blocks       BlockFlags      `json:"blocks"`
}

// Toggle is a feature switch.
type Toggle struct {
	Enabled bool `json:"enabled"`
}

// VisibilityFlags controls optional contact details on the public page.
type VisibilityFlags struct {
	Address   bool `json:"address"`
	Documents bool `json:"documents"`
}

// BlockFlags controls which page sections are rendered.
type BlockFlags struct {
	Hero       bool `json:"hero"`
	Services   bool `json:"services"`
	About      bool `json:"about"`
	Portfolio  bool `json:"portfolio"`
	HowItWorks bool `json:"howItWorks"`
	FAQ        bool `json:"faq"`
	Contacts   bool `json:"contacts"`
}

// DefaultSiteSettings is served until the admin saves settings for the first time.
func DefaultSiteSettings() SiteSettings {
	var s SiteSettings
	s.Company.Name = "Тяжёлый Профиль"
	s.Logo.Enabled = true
	s.Form.Enabled = true
	s.WorkingHours.Enabled = true
	s.Visibility = VisibilityFlags{Address: true, Documents: true}
	s.Blocks = BlockFlags{
		Hero:       true,
		Services:   true,
		About:      true,
		Portfolio:  true,
		HowItWorks: true,
		FAQ:        true,
		Contacts:   true,
	}
	return s
}
