// Package resource defines the internal resource graph that the DataCite
// importer populates and the exporters read.
package resource

import (
	"strings"

	"github.com/google/uuid"
)

// Resource is a curated dataset or publication with its owned metadata
// collections. The DOI stays empty until the resource is registered.
type Resource struct {
	ID              uuid.UUID
	CreatedBy       uuid.UUID // curator who ingested the record
	DOI             string
	PublicationYear int
	Version         string
	Language        string // ISO code, empty when unresolved
	ResourceType    string // controlled vocabulary slug
	Publisher       *Publisher

	Titles             []Title
	Creators           []Creator
	Contributors       []Contributor
	Descriptions       []Description
	Subjects           []Subject
	Rights             []Rights
	Dates              []ResourceDate
	RelatedIdentifiers []RelatedIdentifier
	FundingReferences  []FundingReference
	Sizes              []string
	Formats            []string
	GeoLocations       []GeoLocation
	PhysicalSamples    []PhysicalSample
}

// TitleType classifies a title entry. The empty value marks the implicit
// main title; a resource carries at most one of those.
type TitleType string

const (
	TitleMain        TitleType = ""
	TitleSubtitle    TitleType = "Subtitle"
	TitleAlternative TitleType = "AlternativeTitle"
	TitleTranslated  TitleType = "TranslatedTitle"
	TitleOther       TitleType = "Other"
)

// Title is one entry in the position-ordered title list.
type Title struct {
	Value    string
	Type     TitleType
	Language string
	Position int
}

// Publisher is an owned reference record. Identifier fields follow the
// DataCite structured publisher shape.
type Publisher struct {
	ID               uuid.UUID
	Name             string
	Identifier       string
	IdentifierScheme string
	SchemeURI        string
	Language         string
}

// Description is a typed free-text block.
type Description struct {
	Value    string
	Type     string // Abstract, Methods, TechnicalInfo, ...
	Language string
}

// Subject is a keyword or classification term.
type Subject struct {
	Value              string
	Scheme             string
	SchemeURI          string
	ValueURI           string
	ClassificationCode string
}

// Rights is a license or rights statement.
type Rights struct {
	Value            string
	URI              string
	Identifier       string
	IdentifierScheme string
	SchemeURI        string
}

// RelatedIdentifier links the resource to another identified object.
type RelatedIdentifier struct {
	Value          string
	IdentifierType string
	RelationType   string
	ResourceType   string // relatedMetadataScheme peers omitted; general type only
}

// FundingReference credits a funder and optionally an award.
type FundingReference struct {
	FunderName           string
	FunderIdentifier     string
	FunderIdentifierType string
	AwardNumber          string
	AwardTitle           string
	AwardURI             string
}

// GeoLocation describes spatial coverage as place, point, or bounding box.
type GeoLocation struct {
	Place string

	PointLongitude *float64
	PointLatitude  *float64

	WestBoundLongitude *float64
	EastBoundLongitude *float64
	SouthBoundLatitude *float64
	NorthBoundLatitude *float64
}

// PhysicalSample is an IGSN-identified specimen tied to the resource.
// Its presence switches on the contributor-to-creator projection during
// export.
type PhysicalSample struct {
	IGSN string
	Name string
}

// HasPhysicalSamples reports whether the resource carries physical-sample
// metadata.
func (r *Resource) HasPhysicalSamples() bool {
	return len(r.PhysicalSamples) > 0
}

// MainTitle returns the implicit main title, or the first title when every
// entry is typed, or nil when the resource has no titles at all.
func (r *Resource) MainTitle() *Title {
	for i := range r.Titles {
		if r.Titles[i].Type == TitleMain {
			return &r.Titles[i]
		}
	}
	if len(r.Titles) > 0 {
		return &r.Titles[0]
	}
	return nil
}

// DateByType returns the first date with the given type, matched
// case-insensitively, or nil.
func (r *Resource) DateByType(dateType string) *ResourceDate {
	for i := range r.Dates {
		if strings.EqualFold(r.Dates[i].Type, dateType) {
			return &r.Dates[i]
		}
	}
	return nil
}
