package datacite

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/McNamara84/ernie-go/resource"
)

// ExportXML renders a resource as a DataCite kernel-4 XML document with
// the 4.6 schema location. It reuses the JSON attribute mapping so the
// two serializations cannot drift apart.
func (e *Exporter) ExportXML(r *resource.Resource) ([]byte, error) {
	doc := e.Export(r)
	xmlRes := documentToXML(&doc.Data.Attributes)

	output, err := xml.MarshalIndent(xmlRes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling DataCite XML: %w", err)
	}
	return append([]byte(xml.Header), append(output, '\n')...), nil
}

func documentToXML(attrs *Attributes) *XMLResource {
	xmlRes := &XMLResource{
		Xmlns:             Namespace,
		XmlnsXsi:          "http://www.w3.org/2001/XMLSchema-instance",
		XsiSchemaLocation: SchemaLocation,
		// The identifier element is always present; it stays empty until
		// a DOI is registered.
		Identifier: XMLIdentifier{IdentifierType: "DOI", Value: attrs.DOI},
		Language:   attrs.Language,
		Version:    attrs.Version,
	}

	if attrs.PublicationYear > 0 {
		xmlRes.PublicationYear = strconv.Itoa(attrs.PublicationYear)
	}

	for _, c := range attrs.Creators {
		xmlRes.Creators = append(xmlRes.Creators, XMLCreator{
			CreatorName:     XMLName{NameType: c.NameType, Value: c.Name},
			GivenName:       c.GivenName,
			FamilyName:      c.FamilyName,
			NameIdentifiers: nameIdentifiersToXML(c.NameIdentifiers),
			Affiliations:    affiliationsToXML(c.Affiliation),
		})
	}

	for _, c := range attrs.Contributors {
		xmlRes.Contributors = append(xmlRes.Contributors, XMLContributor{
			ContributorType: c.ContributorType,
			ContributorName: XMLName{NameType: c.NameType, Value: c.Name},
			GivenName:       c.GivenName,
			FamilyName:      c.FamilyName,
			NameIdentifiers: nameIdentifiersToXML(c.NameIdentifiers),
			Affiliations:    affiliationsToXML(c.Affiliation),
		})
	}

	for _, t := range attrs.Titles {
		xmlRes.Titles = append(xmlRes.Titles, XMLTitle{
			TitleType: t.TitleType,
			Lang:      t.Lang,
			Value:     t.Title,
		})
	}

	if attrs.Publisher != nil {
		xmlRes.Publisher = &XMLPublisher{
			Value:                     attrs.Publisher.Name,
			PublisherIdentifier:       attrs.Publisher.PublisherIdentifier,
			PublisherIdentifierScheme: attrs.Publisher.PublisherIdentifierScheme,
			SchemeURI:                 attrs.Publisher.SchemeURI,
			Lang:                      attrs.Publisher.Lang,
		}
	}

	xmlRes.ResourceType = &XMLResourceType{
		ResourceTypeGeneral: attrs.Types.ResourceTypeGeneral,
		Value:               attrs.Types.ResourceType,
	}

	for _, s := range attrs.Subjects {
		xmlRes.Subjects = append(xmlRes.Subjects, XMLSubject{
			SubjectScheme:      s.SubjectScheme,
			SchemeURI:          s.SchemeURI,
			ValueURI:           s.ValueURI,
			ClassificationCode: s.ClassificationCode,
			Value:              s.Subject,
		})
	}

	for _, d := range attrs.Dates {
		xmlRes.Dates = append(xmlRes.Dates, XMLDate{
			DateType:        d.DateType,
			DateInformation: d.DateInformation,
			Value:           d.Date,
		})
	}

	for _, id := range attrs.Identifiers {
		if id.IdentifierType == "DOI" {
			continue
		}
		xmlRes.AlternateIdentifiers = append(xmlRes.AlternateIdentifiers, XMLAlternateIdentifier{
			AlternateIdentifierType: id.IdentifierType,
			Value:                   id.Identifier,
		})
	}

	for _, rel := range attrs.RelatedIdentifiers {
		xmlRes.RelatedIdentifiers = append(xmlRes.RelatedIdentifiers, XMLRelatedIdentifier{
			RelatedIdentifierType: rel.RelatedIdentifierType,
			RelationType:          rel.RelationType,
			ResourceTypeGeneral:   rel.ResourceTypeGeneral,
			Value:                 rel.RelatedIdentifier,
		})
	}

	xmlRes.Sizes = attrs.Sizes
	xmlRes.Formats = attrs.Formats

	for _, r := range attrs.RightsList {
		xmlRes.RightsList = append(xmlRes.RightsList, XMLRights{
			RightsURI:              r.RightsURI,
			RightsIdentifier:       r.RightsIdentifier,
			RightsIdentifierScheme: r.RightsIdentifierScheme,
			SchemeURI:              r.SchemeURI,
			Value:                  r.Rights,
		})
	}

	for _, d := range attrs.Descriptions {
		xmlRes.Descriptions = append(xmlRes.Descriptions, XMLDescription{
			DescriptionType: d.DescriptionType,
			Lang:            d.Lang,
			Value:           d.Description,
		})
	}

	for _, g := range attrs.GeoLocations {
		xmlGeo := XMLGeoLocation{GeoLocationPlace: g.GeoLocationPlace}
		if g.GeoLocationPoint != nil {
			xmlGeo.GeoLocationPoint = &XMLGeoLocationPoint{
				PointLongitude: g.GeoLocationPoint.PointLongitude,
				PointLatitude:  g.GeoLocationPoint.PointLatitude,
			}
		}
		if g.GeoLocationBox != nil {
			xmlGeo.GeoLocationBox = &XMLGeoLocationBox{
				WestBoundLongitude: g.GeoLocationBox.WestBoundLongitude,
				EastBoundLongitude: g.GeoLocationBox.EastBoundLongitude,
				SouthBoundLatitude: g.GeoLocationBox.SouthBoundLatitude,
				NorthBoundLatitude: g.GeoLocationBox.NorthBoundLatitude,
			}
		}
		xmlRes.GeoLocations = append(xmlRes.GeoLocations, xmlGeo)
	}

	for _, f := range attrs.FundingReferences {
		ref := XMLFundingReference{
			FunderName:  f.FunderName,
			AwardNumber: f.AwardNumber,
			AwardTitle:  f.AwardTitle,
		}
		if f.FunderIdentifier != "" {
			ref.FunderIdentifier = &XMLFunderIdentifier{
				FunderIdentifierType: f.FunderIdentifierType,
				Value:                f.FunderIdentifier,
			}
		}
		xmlRes.FundingReferences = append(xmlRes.FundingReferences, ref)
	}

	return xmlRes
}

func nameIdentifiersToXML(ids []NameIdentifier) []XMLNameIdentifier {
	var result []XMLNameIdentifier
	for _, id := range ids {
		result = append(result, XMLNameIdentifier{
			NameIdentifierScheme: id.NameIdentifierScheme,
			SchemeURI:            id.SchemeURI,
			Value:                id.NameIdentifier,
		})
	}
	return result
}

func affiliationsToXML(raw any) []XMLAffiliation {
	affs, ok := raw.([]Affiliation)
	if !ok {
		return nil
	}
	var result []XMLAffiliation
	for _, a := range affs {
		result = append(result, XMLAffiliation{
			AffiliationIdentifier:       a.AffiliationIdentifier,
			AffiliationIdentifierScheme: a.AffiliationIdentifierScheme,
			SchemeURI:                   a.SchemeURI,
			Value:                       a.Name,
		})
	}
	return result
}

// XML types for DataCite marshaling. Text content escaping is handled by
// encoding/xml.

type XMLResource struct {
	XMLName              xml.Name                 `xml:"resource"`
	Xmlns                string                   `xml:"xmlns,attr"`
	XmlnsXsi             string                   `xml:"xmlns:xsi,attr"`
	XsiSchemaLocation    string                   `xml:"xsi:schemaLocation,attr"`
	Identifier           XMLIdentifier            `xml:"identifier"`
	Creators             []XMLCreator             `xml:"creators>creator"`
	Titles               []XMLTitle               `xml:"titles>title"`
	Publisher            *XMLPublisher            `xml:"publisher"`
	PublicationYear      string                   `xml:"publicationYear,omitempty"`
	ResourceType         *XMLResourceType         `xml:"resourceType"`
	Subjects             []XMLSubject             `xml:"subjects>subject,omitempty"`
	Contributors         []XMLContributor         `xml:"contributors>contributor,omitempty"`
	Dates                []XMLDate                `xml:"dates>date,omitempty"`
	Language             string                   `xml:"language,omitempty"`
	AlternateIdentifiers []XMLAlternateIdentifier `xml:"alternateIdentifiers>alternateIdentifier,omitempty"`
	RelatedIdentifiers   []XMLRelatedIdentifier   `xml:"relatedIdentifiers>relatedIdentifier,omitempty"`
	Sizes                []string                 `xml:"sizes>size,omitempty"`
	Formats              []string                 `xml:"formats>format,omitempty"`
	Version              string                   `xml:"version,omitempty"`
	RightsList           []XMLRights              `xml:"rightsList>rights,omitempty"`
	Descriptions         []XMLDescription         `xml:"descriptions>description,omitempty"`
	GeoLocations         []XMLGeoLocation         `xml:"geoLocations>geoLocation,omitempty"`
	FundingReferences    []XMLFundingReference    `xml:"fundingReferences>fundingReference,omitempty"`
}

type XMLIdentifier struct {
	IdentifierType string `xml:"identifierType,attr"`
	Value          string `xml:",chardata"`
}

type XMLName struct {
	NameType string `xml:"nameType,attr,omitempty"`
	Value    string `xml:",chardata"`
}

type XMLCreator struct {
	CreatorName     XMLName             `xml:"creatorName"`
	GivenName       string              `xml:"givenName,omitempty"`
	FamilyName      string              `xml:"familyName,omitempty"`
	NameIdentifiers []XMLNameIdentifier `xml:"nameIdentifier,omitempty"`
	Affiliations    []XMLAffiliation    `xml:"affiliation,omitempty"`
}

type XMLContributor struct {
	ContributorType string              `xml:"contributorType,attr"`
	ContributorName XMLName             `xml:"contributorName"`
	GivenName       string              `xml:"givenName,omitempty"`
	FamilyName      string              `xml:"familyName,omitempty"`
	NameIdentifiers []XMLNameIdentifier `xml:"nameIdentifier,omitempty"`
	Affiliations    []XMLAffiliation    `xml:"affiliation,omitempty"`
}

type XMLNameIdentifier struct {
	NameIdentifierScheme string `xml:"nameIdentifierScheme,attr"`
	SchemeURI            string `xml:"schemeURI,attr,omitempty"`
	Value                string `xml:",chardata"`
}

type XMLAffiliation struct {
	AffiliationIdentifier       string `xml:"affiliationIdentifier,attr,omitempty"`
	AffiliationIdentifierScheme string `xml:"affiliationIdentifierScheme,attr,omitempty"`
	SchemeURI                   string `xml:"schemeURI,attr,omitempty"`
	Value                       string `xml:",chardata"`
}

type XMLTitle struct {
	TitleType string `xml:"titleType,attr,omitempty"`
	Lang      string `xml:"xml:lang,attr,omitempty"`
	Value     string `xml:",chardata"`
}

type XMLPublisher struct {
	PublisherIdentifier       string `xml:"publisherIdentifier,attr,omitempty"`
	PublisherIdentifierScheme string `xml:"publisherIdentifierScheme,attr,omitempty"`
	SchemeURI                 string `xml:"schemeURI,attr,omitempty"`
	Lang                      string `xml:"xml:lang,attr,omitempty"`
	Value                     string `xml:",chardata"`
}

type XMLResourceType struct {
	ResourceTypeGeneral string `xml:"resourceTypeGeneral,attr"`
	Value               string `xml:",chardata"`
}

type XMLSubject struct {
	SubjectScheme      string `xml:"subjectScheme,attr,omitempty"`
	SchemeURI          string `xml:"schemeURI,attr,omitempty"`
	ValueURI           string `xml:"valueURI,attr,omitempty"`
	ClassificationCode string `xml:"classificationCode,attr,omitempty"`
	Value              string `xml:",chardata"`
}

type XMLDate struct {
	DateType        string `xml:"dateType,attr"`
	DateInformation string `xml:"dateInformation,attr,omitempty"`
	Value           string `xml:",chardata"`
}

type XMLAlternateIdentifier struct {
	AlternateIdentifierType string `xml:"alternateIdentifierType,attr"`
	Value                   string `xml:",chardata"`
}

type XMLRelatedIdentifier struct {
	RelatedIdentifierType string `xml:"relatedIdentifierType,attr"`
	RelationType          string `xml:"relationType,attr"`
	ResourceTypeGeneral   string `xml:"resourceTypeGeneral,attr,omitempty"`
	Value                 string `xml:",chardata"`
}

type XMLRights struct {
	RightsURI              string `xml:"rightsURI,attr,omitempty"`
	RightsIdentifier       string `xml:"rightsIdentifier,attr,omitempty"`
	RightsIdentifierScheme string `xml:"rightsIdentifierScheme,attr,omitempty"`
	SchemeURI              string `xml:"schemeURI,attr,omitempty"`
	Value                  string `xml:",chardata"`
}

type XMLDescription struct {
	DescriptionType string `xml:"descriptionType,attr"`
	Lang            string `xml:"xml:lang,attr,omitempty"`
	Value           string `xml:",chardata"`
}

type XMLGeoLocation struct {
	GeoLocationPlace string               `xml:"geoLocationPlace,omitempty"`
	GeoLocationPoint *XMLGeoLocationPoint `xml:"geoLocationPoint,omitempty"`
	GeoLocationBox   *XMLGeoLocationBox   `xml:"geoLocationBox,omitempty"`
}

type XMLGeoLocationPoint struct {
	PointLongitude float64 `xml:"pointLongitude"`
	PointLatitude  float64 `xml:"pointLatitude"`
}

type XMLGeoLocationBox struct {
	WestBoundLongitude float64 `xml:"westBoundLongitude"`
	EastBoundLongitude float64 `xml:"eastBoundLongitude"`
	SouthBoundLatitude float64 `xml:"southBoundLatitude"`
	NorthBoundLatitude float64 `xml:"northBoundLatitude"`
}

type XMLFundingReference struct {
	FunderName       string               `xml:"funderName"`
	FunderIdentifier *XMLFunderIdentifier `xml:"funderIdentifier,omitempty"`
	AwardNumber      string               `xml:"awardNumber,omitempty"`
	AwardTitle       string               `xml:"awardTitle,omitempty"`
}

type XMLFunderIdentifier struct {
	FunderIdentifierType string `xml:"funderIdentifierType,attr,omitempty"`
	Value                string `xml:",chardata"`
}
