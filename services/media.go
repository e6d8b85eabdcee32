package services

import (
	"fmt"

	"SocialStream/models"

	"github.com/h2non/filetype"
	ftypes "github.com/h2non/filetype/types"
)

// allowedFileTypes maps h2non/filetype MIME values to the media kind
// publishers understand. Detection uses magic numbers, never extensions.
var allowedFileTypes = map[string]models.MediaType{
	"image/jpeg": models.MediaImage,
	"image/png":  models.MediaImage,
	"image/gif":  models.MediaImage,
	"image/webp": models.MediaImage,
	"video/mp4":  models.MediaVideo,
}

// DetectMediaType sniffs the header of payload and reports its media kind
// and MIME type.
func DetectMediaType(payload []byte) (models.MediaType, string, error) {
	if len(payload) == 0 {
		return models.MediaUnknown, "", fmt.Errorf("empty media payload")
	}

	// filetype needs at most 262 bytes of header
	head := payload
	if len(head) > 512 {
		head = head[:512]
	}

	kind, err := filetype.Match(head)
	if err != nil {
		return models.MediaUnknown, "", fmt.Errorf("file type detection failed: %w", err)
	}
	if kind == ftypes.Unknown {
		return models.MediaUnknown, "", fmt.Errorf("unrecognised media payload")
	}

	mediaType, ok := allowedFileTypes[kind.MIME.Value]
	if !ok {
		return models.MediaUnknown, kind.MIME.Value, fmt.Errorf("unsupported media type %s", kind.MIME.Value)
	}
	return mediaType, kind.MIME.Value, nil
}

// syntheticReelHeader is the start of an ISO base media (MP4) file: an ftyp
// box with major brand mp42.
var syntheticReelHeader = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
	'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00,
	'm', 'p', '4', '2', 'i', 's', 'o', 'm',
}
