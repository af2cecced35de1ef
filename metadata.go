package thumbnail

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bep/imagemeta"
)

// ImageMetadata holds the EXIF, IPTC and XMP rights fields used to spot
// stock-agency images.
type ImageMetadata struct {
	EXIFCopyright string
	EXIFArtist    string
	IPTCCopyright string
	IPTCCredit    string
	IPTCSource    string
	IPTCByline    string
	DCRights      string
	DCCreator     string
}

// stockAgencies are matched case-insensitively against every rights field.
var stockAgencies = []string{
	"shutterstock",
	"gettyimages",
	"getty images",
	"istockphoto",
	"istock",
	"alamy",
	"depositphotos",
	"dreamstime",
	"123rf",
	"adobestock",
	"adobe stock",
	"bigstockphoto",
	"stocksy",
	"pond5",
	"masterfile",
	"superstock",
	"agefotostock",
	"age fotostock",
	"vectorstock",
	"freepik",
	"canstockphoto",
}

// StockAgency returns the first stock agency named in meta, or "".
func StockAgency(meta *ImageMetadata) string {
	if meta == nil {
		return ""
	}
	for _, f := range []string{
		meta.EXIFCopyright,
		meta.EXIFArtist,
		meta.IPTCCopyright,
		meta.IPTCCredit,
		meta.IPTCSource,
		meta.IPTCByline,
		meta.DCRights,
		meta.DCCreator,
	} {
		if f == "" {
			continue
		}
		lower := strings.ToLower(f)
		for _, kw := range stockAgencies {
			if strings.Contains(lower, kw) {
				return kw
			}
		}
	}
	return ""
}

// isStock reports whether downloaded image data carries stock-agency rights
// metadata. Missing or unparsable data is not stock.
func (cfg *Config) isStock(url string, data []byte) bool {
	agency := StockAgency(ExtractImageMetadata(data))
	if agency == "" {
		return false
	}
	slog.Debug("thumbnail: stock image rejected", "url", url, "agency", agency)
	return true
}

// wantedTags maps (source, tag-name) → true for every tag we care about.
var wantedTags = map[imagemeta.Source]map[string]bool{
	imagemeta.IPTC: {
		"CopyrightNotice": true,
		"Credit":          true,
		"Byline":          true,
		"Source":          true,
	},
	imagemeta.EXIF: {
		"Copyright": true,
		"Artist":    true,
	},
	imagemeta.XMP: {
		"Rights":  true,
		"Creator": true,
	},
}

// imageFormat sniffs the container format imagemeta needs to be told about.
func imageFormat(data []byte) (imagemeta.ImageFormat, bool) {
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return imagemeta.TIFF, true
	}
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return imagemeta.JPEG, true
	case "image/png":
		return imagemeta.PNG, true
	case "image/webp":
		return imagemeta.WebP, true
	}
	return 0, false
}

// ExtractImageMetadata parses rights metadata from raw image bytes.
// Returns nil if the data is empty, in an unsupported format, unparsable, or
// carries none of the fields.
func ExtractImageMetadata(data []byte) *ImageMetadata {
	format, ok := imageFormat(data)
	if !ok {
		return nil
	}

	meta := &ImageMetadata{}
	found := false

	err := imagemeta.Decode(imagemeta.Options{
		R:           bytes.NewReader(data),
		ImageFormat: format,
		Sources:     imagemeta.EXIF | imagemeta.IPTC | imagemeta.XMP,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			if tags, ok := wantedTags[ti.Source]; ok {
				return tags[ti.Tag]
			}
			return false
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			switch ti.Source {
			case imagemeta.IPTC:
				handleIPTCTag(meta, ti, &found)
			case imagemeta.EXIF:
				handleEXIFTag(meta, ti, &found)
			case imagemeta.XMP:
				handleXMPTag(meta, ti, &found)
			}
			return nil
		},
	})

	if err != nil || !found {
		return nil
	}

	return meta
}

// handleIPTCTag sets the appropriate ImageMetadata field for an IPTC tag.
func handleIPTCTag(meta *ImageMetadata, ti imagemeta.TagInfo, found *bool) {
	s := tagValueString(ti.Value)
	if s == "" {
		return
	}

	switch ti.Tag {
	case "CopyrightNotice":
		meta.IPTCCopyright = s
	case "Credit":
		meta.IPTCCredit = s
	case "Byline":
		meta.IPTCByline = s
	case "Source":
		meta.IPTCSource = s
	default:
		return
	}

	*found = true
}

// handleEXIFTag sets the appropriate ImageMetadata field for an EXIF tag.
func handleEXIFTag(meta *ImageMetadata, ti imagemeta.TagInfo, found *bool) {
	s := tagValueString(ti.Value)
	if s == "" {
		return
	}

	switch ti.Tag {
	case "Copyright":
		meta.EXIFCopyright = s
	case "Artist":
		meta.EXIFArtist = s
	default:
		return
	}

	*found = true
}

// handleXMPTag sets the Dublin Core fields carried in XMP packets.
func handleXMPTag(meta *ImageMetadata, ti imagemeta.TagInfo, found *bool) {
	s := tagValueString(ti.Value)
	if s == "" {
		return
	}
	switch ti.Tag {
	case "Rights":
		meta.DCRights = s
	case "Creator":
		meta.DCCreator = s
	default:
		return
	}
	*found = true
}

// tagValueString extracts a string from a tag value.
// XMP values may be string or []string (from altList/seqList).
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}
