package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simonhull/audioinfo"
	"github.com/simonhull/audioinfo/internal/metrics"
	"github.com/simonhull/audioinfo/internal/validate"
)

// formOverhead is the multipart framing allowed on top of the payload limit.
const formOverhead = 1 << 20

// AudioHandler serves the analyze endpoints.
type AudioHandler struct {
	validator *validate.Validator
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// NewAudioHandler creates a new audio handler.
func NewAudioHandler(v *validate.Validator, m *metrics.Metrics, log *slog.Logger) *AudioHandler {
	return &AudioHandler{validator: v, metrics: m, log: log}
}

// Alive reports that the server is up.
func Alive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "alive"})
}

// AnalyzeAudio takes {"audio": "<base64>"} and returns its metadata.
func (h *AudioHandler) AnalyzeAudio(c *gin.Context) {
	// Base64 inflates by 4/3; leave room for the JSON envelope.
	limit := h.validator.MaxSize/3*4 + 4 + formOverhead
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.reject(c, validate.TooLarge(h.validator.MaxSize, err))
			return
		}
		h.reject(c, validate.BadRequest(validate.MsgInvalidJSON, err))
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		h.reject(c, validate.BadRequest(validate.MsgInvalidJSON, err))
		return
	}
	raw, ok := fields["audio"]
	if !ok {
		h.reject(c, validate.BadRequest(validate.MsgAudioRequired, nil))
		return
	}
	if len(fields) != 1 {
		h.reject(c, validate.BadRequest(validate.MsgUnexpectedFields, nil))
		return
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		h.reject(c, validate.BadRequest(validate.MsgProcessing, err))
		return
	}

	in, err := h.validator.FromBase64(encoded)
	if err != nil {
		h.reject(c, err)
		return
	}
	h.extract(c, in)
}

// AnalyzeBinaryAudio takes a multipart upload with one "audio" file part.
func (h *AudioHandler) AnalyzeBinaryAudio(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.validator.MaxSize+formOverhead)

	file, header, err := uploadedFile(c.Request, h.validator.MaxSize)
	if err != nil {
		h.reject(c, err)
		return
	}
	defer file.Close()

	in, err := h.validator.FromReader(file, header.Size)
	if err != nil {
		h.reject(c, err)
		return
	}
	h.extract(c, in)
}

// uploadedFile returns the single "audio" part of a multipart request.
func uploadedFile(r *http.Request, limit int64) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, nil, validate.TooLarge(limit, err)
		}
		return nil, nil, validate.BadRequest(validate.MsgNoFile, err)
	}
	files := r.MultipartForm.File
	if len(files) == 0 {
		return nil, nil, validate.BadRequest(validate.MsgNoFile, nil)
	}
	parts, ok := files["audio"]
	if !ok {
		return nil, nil, validate.BadRequest(validate.MsgAudioRequired, nil)
	}
	// Repeated audio parts are accepted; only the first is read.
	if len(files) != 1 {
		return nil, nil, validate.BadRequest(validate.MsgUnexpectedFields, nil)
	}
	f, err := parts[0].Open()
	if err != nil {
		return nil, nil, validate.BadRequest(validate.MsgProcessing, err)
	}
	return f, parts[0], nil
}

func (h *AudioHandler) extract(c *gin.Context, in audioinfo.Input) {
	h.metrics.PayloadBytes.Observe(float64(len(in.Data)))

	start := time.Now()
	meta, err := audioinfo.Extract(in.Data, in.Format)
	elapsed := time.Since(start)

	format := in.Format.String()
	if err != nil {
		outcome := metrics.OutcomeInvalid
		if audioinfo.KindOf(err) == audioinfo.KindInternal {
			outcome = metrics.OutcomeError
		}
		h.metrics.ObserveExtraction(format, outcome, elapsed)
		h.fail(c, err)
		return
	}

	h.metrics.ObserveExtraction(format, metrics.OutcomeSuccess, elapsed)
	h.metrics.AudioDuration.WithLabelValues(format).Observe(meta.Duration)
	h.log.Debug("extracted",
		"format", format,
		"duration", meta.Duration,
		"estimated", meta.DurationEstimated,
		requestIDKey, c.GetString(requestIDKey))
	c.JSON(http.StatusOK, NewAudioInfo(meta))
}

// reject answers a request that failed before extraction.
func (h *AudioHandler) reject(c *gin.Context, err error) {
	h.metrics.ObserveRejected()
	h.fail(c, err)
}

func (h *AudioHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status, msg := StatusFor(err)
	c.AbortWithStatusJSON(status, errorBody(msg))
}
