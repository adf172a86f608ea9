package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/minhon/internal/db"
	"horse.fit/minhon/internal/globaltime"
	"horse.fit/minhon/internal/langdetect"
	"horse.fit/minhon/internal/payloadschema"
	"horse.fit/minhon/internal/textra"
)

// maxTranslateBodyBytes caps the request body; the schema separately
// caps the text length.
const maxTranslateBodyBytes = 1 << 20

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
	DetectedLang   string `json:"detected_lang,omitempty"`
	LatencyMS      int64  `json:"latency_ms"`
}

func (s *Server) handleTranslate(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxTranslateBodyBytes))
	if err != nil {
		return failValidation(c, map[string]string{"body": "failed to read request body"})
	}

	req, err := payloadschema.ValidateTranslateRequest(body)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	detectedLang := langdetect.DetectISO6391(req.Text)

	started := globaltime.Now()
	translated, translateErr := s.translator.Translate(c.Request().Context(), req.Text)
	latency := time.Since(started).Milliseconds()

	s.recordHistory(c, req.Text, translated, detectedLang, latency, translateErr)

	if translateErr != nil {
		return s.translateFailure(c, translateErr)
	}

	return success(c, translateResponse{
		TranslatedText: translated,
		DetectedLang:   detectedLang,
		LatencyMS:      latency,
	})
}

// translateFailure maps the error taxonomy onto user-facing messages;
// the taxonomy detail travels in the data payload for diagnostics.
func (s *Server) translateFailure(c echo.Context, err error) error {
	kind := textra.KindOf(err)
	detail := map[string]any{
		"kind":   kind.String(),
		"detail": err.Error(),
	}

	switch kind {
	case textra.KindConfiguration:
		s.logger.Error().Err(err).Msg("translation configuration error")
		return fail(c, http.StatusInternalServerError,
			"Translation failed due to a configuration issue. Please check the server setup.", detail)
	case textra.KindAuthentication:
		s.logger.Error().Err(err).Msg("translation authentication error")
		return fail(c, http.StatusBadGateway,
			"Translation failed due to an authentication issue. Please check the server credentials.", detail)
	case textra.KindNetwork:
		s.logger.Error().Err(err).Msg("translation network error")
		return fail(c, http.StatusBadGateway,
			"Translation failed due to a network issue. Please try again later.", detail)
	case textra.KindRemoteAPI:
		s.logger.Error().Err(err).Msg("translation API error")
		return fail(c, http.StatusBadGateway,
			"Translation failed due to an API error. Please try again later.", detail)
	default:
		s.logger.Error().Err(err).Msg("unexpected translation error")
		return fail(c, http.StatusInternalServerError,
			"An unexpected error occurred during translation. Please try again.", detail)
	}
}

// recordHistory is best effort: a history failure never fails the
// translate call.
func (s *Server) recordHistory(c echo.Context, source, translated, detectedLang string, latencyMS int64, translateErr error) {
	if s.pool == nil {
		return
	}

	status := "ok"
	errorMessage := ""
	if translateErr != nil {
		status = textra.KindOf(translateErr).String()
		errorMessage = translateErr.Error()
		translated = ""
	}

	params := db.InsertTranslationRecordParams{
		RequestID:      c.Response().Header().Get(echo.HeaderXRequestID),
		SourceChars:    len([]rune(source)),
		TranslatedText: translated,
		DetectedLang:   detectedLang,
		Status:         status,
		ErrorMessage:   errorMessage,
		LatencyMS:      latencyMS,
	}
	if err := s.pool.InsertTranslationRecord(c.Request().Context(), params); err != nil {
		s.logger.Error().Err(err).Msg("record translation history failed")
	}
}

func (s *Server) handleHistory(c echo.Context) error {
	if s.pool == nil {
		return fail(c, http.StatusServiceUnavailable, "Translation history is not enabled", nil)
	}

	limit, err := parsePositiveInt(c.QueryParam("limit"), 50, 1, 500)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	items, err := s.pool.ListTranslationRecords(c.Request().Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("query translation history failed")
		return internalError(c, "Failed to load translation history")
	}

	return success(c, map[string]any{
		"items": items,
	})
}
