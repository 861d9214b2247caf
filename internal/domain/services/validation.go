package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	// decoders registered for image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"scamshield/internal/domain/models"
)

// ErrInvalidInput marks errors caused by bad user input
var ErrInvalidInput = errors.New("invalid input")

// invalidf returns an error wrapping ErrInvalidInput with a user-facing
// message
func invalidf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError describes why input was rejected
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Input limits
const (
	MaxURLLength      = 2048
	MaxTextLength     = 10000
	MaxFilenameLength = 255
	MaxImageSize      = 10 << 20
	MaxAudioSize      = 25 << 20
	MaxBatchURLs      = 50
	MinReportText     = 5
	MinFeedbackText   = 3
)

var audioExtensions = map[string]bool{
	".wav": true, ".mp3": true, ".m4a": true, ".aac": true, ".ogg": true, ".flac": true,
}

var audioContentTypes = map[string]bool{
	"audio/wav": true, "audio/wave": true, "audio/x-wav": true,
	"audio/mp3": true, "audio/mpeg": true,
	"audio/m4a": true, "audio/x-m4a": true, "audio/mp4": true,
	"audio/aac": true,
	"audio/ogg": true, "audio/vorbis": true,
	"audio/flac": true,
	"audio/webm": true,
}

var unsafeFilename = regexp.MustCompile(`\.{2,}|[<>:"|?*\\/]|[\x00-\x1f]|^\.+$`)

// ValidateURLInput checks a URL submitted for scanning
func ValidateURLInput(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalidf("URL is required")
	}
	if len(s) > MaxURLLength {
		return "", invalidf("URL exceeds maximum length (%d chars)", MaxURLLength)
	}
	for _, r := range s {
		if r < 32 {
			return "", invalidf("URL contains invalid characters")
		}
	}
	return s, nil
}

// ValidateTextInput checks message text submitted for scanning
func ValidateTextInput(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalidf("Text content is required")
	}
	if utf8.RuneCountInString(s) > MaxTextLength {
		return "", invalidf("Text exceeds maximum length (%d chars)", MaxTextLength)
	}
	return s, nil
}

func validateFilename(name string) error {
	if name == "" {
		return invalidf("Filename is required")
	}
	if len(name) > MaxFilenameLength {
		return invalidf("Filename too long")
	}
	if name != strings.TrimSpace(name) || unsafeFilename.MatchString(name) {
		return invalidf("Filename contains invalid characters")
	}
	return nil
}

// ValidateScreenshot checks an uploaded image: size limit and a header any
// registered image decoder accepts
func ValidateScreenshot(up models.Upload) error {
	if err := validateFilename(up.Filename); err != nil {
		return err
	}
	if len(up.Data) == 0 {
		return invalidf("File is empty")
	}
	if len(up.Data) > MaxImageSize {
		return invalidf("Image too large. Maximum size is %dMB", MaxImageSize>>20)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(up.Data)); err != nil {
		return invalidf("File must be an image")
	}
	return nil
}

// ValidateAudio checks an uploaded recording: size limit and a supported
// format by extension or content type
func ValidateAudio(up models.Upload) error {
	if err := validateFilename(up.Filename); err != nil {
		return err
	}
	if len(up.Data) == 0 {
		return invalidf("File is empty")
	}
	if len(up.Data) > MaxAudioSize {
		return invalidf("Audio too large. Maximum size is %dMB", MaxAudioSize>>20)
	}
	ext := strings.ToLower(filepath.Ext(up.Filename))
	ct := strings.ToLower(strings.TrimSpace(strings.Split(up.ContentType, ";")[0]))
	if !audioExtensions[ext] && !audioContentTypes[ct] {
		return invalidf("Unsupported audio format. Supported: WAV, MP3, M4A, AAC, OGG, FLAC")
	}
	return nil
}

// ValidateReport checks a scam report before it is sent or queued
func ValidateReport(req *models.ReportRequest) error {
	req.InputText = strings.TrimSpace(req.InputText)
	if !req.InputType.Valid() {
		return invalidf("Invalid input type. Must be: url, text, screenshot, or audio")
	}
	if utf8.RuneCountInString(req.InputText) < MinReportText {
		return invalidf("Input text is too short")
	}
	return nil
}

// ValidateFeedback checks verdict feedback and fills in its type
func ValidateFeedback(req *models.FeedbackRequest) error {
	req.InputText = strings.TrimSpace(req.InputText)
	if !req.OriginalVerdict.Valid() {
		return invalidf("Invalid original_verdict. Must be one of: safe, suspicious, malicious")
	}
	if !req.UserVerdict.Valid() {
		return invalidf("Invalid user_verdict. Must be one of: safe, suspicious, malicious")
	}
	if utf8.RuneCountInString(req.InputText) < MinFeedbackText {
		return invalidf("Input text is too short")
	}
	if !req.InputType.Valid() {
		return invalidf("Invalid input type. Must be: url, text, screenshot, or audio")
	}
	if req.FeedbackType == "" {
		req.FeedbackType = models.ClassifyFeedback(req.OriginalVerdict, req.UserVerdict)
	}
	return nil
}

// ValidateCommunityReport checks and normalizes a community submission
func ValidateCommunityReport(req *models.CommunityReportRequest) error {
	req.URLText = strings.TrimSpace(req.URLText)
	n := utf8.RuneCountInString(req.URLText)
	if n < models.CommunityURLMinLen || n > models.CommunityURLMaxLen {
		return invalidf("url_text must be between %d and %d characters", models.CommunityURLMinLen, models.CommunityURLMaxLen)
	}
	if utf8.RuneCountInString(req.OptionalDescription) > models.CommunityDescriptionMaxLen {
		return invalidf("optional_description must be at most %d characters", models.CommunityDescriptionMaxLen)
	}
	req.ThreatCategory = string(models.NormalizeThreatCategory(req.ThreatCategory))
	return nil
}

// ValidateChatMessage trims and bounds a chat message
func ValidateChatMessage(msg string) (string, error) {
	s := strings.TrimSpace(msg)
	if s == "" {
		return "", invalidf("Message cannot be empty")
	}
	if utf8.RuneCountInString(s) > models.ChatMessageMaxLen {
		return "", invalidf("Message too long (max %d characters)", models.ChatMessageMaxLen)
	}
	return s, nil
}
