package models

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductKind discriminates the closed set of photo-product variants.
type ProductKind string

const (
	KindPhotoBook ProductKind = "photobook"
	KindCalendar  ProductKind = "calendar"
	KindCards     ProductKind = "cards"
	KindGiftPhoto ProductKind = "giftphoto"
	KindPrint     ProductKind = "print"
)

func (k ProductKind) Valid() bool {
	switch k {
	case KindPhotoBook, KindCalendar, KindCards, KindGiftPhoto, KindPrint:
		return true
	}
	return false
}

// Product is a purchasable catalog item. At most one of the detail
// blocks may be set, and it must match Kind.
type Product struct {
	ID                 primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name               string               `json:"name" bson:"name" binding:"required"`
	Slug               string               `json:"slug,omitempty" bson:"slug"`
	Price              float64              `json:"price" bson:"price" binding:"min=0"`
	Description        string               `json:"description" bson:"description" binding:"required"`
	PriceAfterDiscount *float64             `json:"priceAfterDiscount,omitempty" bson:"priceAfterDiscount,omitempty"`
	SubCategory        *primitive.ObjectID  `json:"sousCategorie,omitempty" bson:"sousCategorie,omitempty"`
	Promotion          *primitive.ObjectID  `json:"promotion,omitempty" bson:"promotion,omitempty"`
	ImageCover         string               `json:"imageCover" bson:"imageCover"`
	Images             []string             `json:"images,omitempty" bson:"images,omitempty"`
	Formats            []primitive.ObjectID `json:"formats,omitempty" bson:"formats,omitempty"`

	Kind      ProductKind       `json:"kind,omitempty" bson:"kind,omitempty"`
	PhotoBook *PhotoBookDetails `json:"photoBook,omitempty" bson:"photoBook,omitempty"`
	Calendar  *CalendarDetails  `json:"calendar,omitempty" bson:"calendar,omitempty"`
	Cards     *CardsDetails     `json:"cards,omitempty" bson:"cards,omitempty"`
	GiftPhoto *GiftPhotoDetails `json:"giftPhoto,omitempty" bson:"giftPhoto,omitempty"`
	Print     *PrintDetails     `json:"print,omitempty" bson:"print,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type PhotoBookDetails struct {
	PaperQuality   string `json:"paperQuality" bson:"paperQuality" binding:"required"`
	CoverType      string `json:"coverType" bson:"coverType" binding:"required"`
	NumberOfPages  int    `json:"numberOfPages" bson:"numberOfPages" binding:"required"`
	NumberOfPhotos int    `json:"numberOfPhotos" bson:"numberOfPhotos" binding:"required"`
	Size           string `json:"size" bson:"size" binding:"required,oneof=S M L XL"`
}

type CalendarDetails struct {
	Year           int    `json:"year" bson:"year" binding:"required"`
	PaperQuality   string `json:"paperQuality" bson:"paperQuality" binding:"required"`
	NumberOfPhotos int    `json:"numberOfPhotos" bson:"numberOfPhotos" binding:"required"`
}

type CardsDetails struct {
	NumberOfCards  int    `json:"numberOfCards" bson:"numberOfCards" binding:"required"`
	PaperQuality   string `json:"paperQuality" bson:"paperQuality" binding:"required"`
	Occasion       string `json:"occasion" bson:"occasion" binding:"required"`
	NumberOfPhotos int    `json:"numberOfPhotos" bson:"numberOfPhotos" binding:"required"`
}

type GiftPhotoDetails struct {
	Occasion            string `json:"occasion" bson:"occasion" binding:"required"`
	PersonalizedMessage string `json:"personalizedMessage" bson:"personalizedMessage" binding:"required"`
	WrappingType        string `json:"wrappingType" bson:"wrappingType" binding:"required"`
	GiftSize            string `json:"giftSize" bson:"giftSize" binding:"required"`
	NumberOfPhotos      int    `json:"numberOfPhotos" bson:"numberOfPhotos" binding:"required"`
}

type PrintDetails struct {
	PrintName      string `json:"printName" bson:"printName" binding:"required"`
	NumberOfPhotos int    `json:"numberOfPhotos" bson:"numberOfPhotos" binding:"required"`
}

// EnsureSlug derives the slug from the name when it is not set.
func (p *Product) EnsureSlug() {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
}

// Validate checks what binding tags cannot: a known kind and exactly
// one matching detail block.
func (p *Product) Validate() error {
	if p.Kind != "" && !p.Kind.Valid() {
		return fmt.Errorf("unknown product kind %q", p.Kind)
	}
	set := map[ProductKind]bool{
		KindPhotoBook: p.PhotoBook != nil,
		KindCalendar:  p.Calendar != nil,
		KindCards:     p.Cards != nil,
		KindGiftPhoto: p.GiftPhoto != nil,
		KindPrint:     p.Print != nil,
	}
	var count int
	for _, present := range set {
		if present {
			count++
		}
	}
	if p.Kind == "" {
		if count != 0 {
			return fmt.Errorf("variant details provided without a kind")
		}
		return nil
	}
	if count != 1 || !set[p.Kind] {
		return fmt.Errorf("product of kind %q must carry exactly its own detail block", p.Kind)
	}
	return nil
}

// ProductUpdate carries the updatable fields; nil keeps the stored
// value.
type ProductUpdate struct {
	Name               *string              `json:"name,omitempty"`
	Price              *float64             `json:"price,omitempty"`
	Description        *string              `json:"description,omitempty"`
	PriceAfterDiscount *float64             `json:"priceAfterDiscount,omitempty"`
	SubCategory        *primitive.ObjectID  `json:"sousCategorie,omitempty"`
	ImageCover         *string              `json:"imageCover,omitempty"`
	Images             []string             `json:"images,omitempty"`
	Formats            []primitive.ObjectID `json:"formats,omitempty"`
	PhotoBook          *PhotoBookDetails    `json:"photoBook,omitempty"`
	Calendar           *CalendarDetails     `json:"calendar,omitempty"`
	Cards              *CardsDetails        `json:"cards,omitempty"`
	GiftPhoto          *GiftPhotoDetails    `json:"giftPhoto,omitempty"`
	Print              *PrintDetails        `json:"print,omitempty"`
}

// CatalogQuery is the filter and pagination set accepted by the
// detailed product listing.
type CatalogQuery struct {
	Slug            string
	SubCategoryName string
	CategoryName    string
	Page            int
	Limit           int
	SortField       string
	SortAsc         bool
}

// ProductDetail is a product joined with its taxonomy, promotion and
// formats, with the effective price attached.
type ProductDetail struct {
	ID              primitive.ObjectID       `json:"_id" bson:"_id"`
	Name            string                   `json:"name" bson:"name"`
	Slug            string                   `json:"slug" bson:"slug"`
	Price           float64                  `json:"price" bson:"price"`
	Description     string                   `json:"description" bson:"description"`
	Kind            ProductKind              `json:"kind,omitempty" bson:"kind,omitempty"`
	ImageCover      string                   `json:"imageCover" bson:"imageCover"`
	SubCategory     *SubCategoryWithCategory `json:"sousCategorie,omitempty" bson:"sousCategorie,omitempty"`
	Promotion       *Promotion               `json:"promotion,omitempty" bson:"promotion,omitempty"`
	Formats         []FormatWithSizes        `json:"formats" bson:"formats"`
	DiscountedPrice float64                  `json:"discountedPrice" bson:"discountedPrice"`
	CreatedAt       time.Time                `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt" bson:"updatedAt"`
}
