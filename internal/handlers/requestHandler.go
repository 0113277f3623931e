package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/akolanti/CaptionSpeech/internal/adapter"
	"github.com/akolanti/CaptionSpeech/internal/adapter/utils"
	"github.com/akolanti/CaptionSpeech/internal/api"
	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/caption"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/speech"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

// GetHandler godoc
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func GetHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// UploadImageHandler godoc
// @Summary      Caption, index and speak an image
// @Description  Stores the upload, captions it, indexes the caption once per item id and synthesizes speech from it.
// @Tags         Pipeline
// @Accept       multipart/form-data
// @Produce      json
// @Param        file              formData  file    true   "Image file"
// @Param        lang              formData  string  false  "Caption language hint"  default(en)
// @Param        description_mode  formData  string  false  "summary or detailed"    default(summary)
// @Param        speaker           formData  string  false  "Voice"                  default(Kore)
// @Param        language          formData  string  false  "Speech language"        default(en-US)
// @Success      200  {object}  api.UploadResponse
// @Failure      400  {object}  api.ErrorResponse  "Invalid file type, mode, speaker or language"
// @Failure      500  {object}  api.ErrorResponse  "Downstream failure"
// @Failure      504  {object}  api.ErrorResponse  "Pipeline timed out"
// @Router       /upload-image [post]
func UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}
	log := logRH.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		writeError(w, r, fmt.Errorf("%w: file too large or bad request", pipelineErrors.ErrMissingFile))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	// cheap checks first, nothing is written until the form is valid
	mode, err := caption.ParseMode(r.FormValue("description_mode"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	speaker, voiceLang, err := speech.ResolveVoice(r.FormValue("speaker"), r.FormValue("language"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	lang := strings.TrimSpace(r.FormValue("lang"))
	if lang == "" {
		lang = config.DefaultCaptionLang
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, pipelineErrors.ErrMissingFile)
		return
	}
	defer file.Close()

	asset, err := handlerInstance.deps.Uploads.Save(header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := handlerInstance.runUpload(r.Context(), uploadRequest{
		asset:   asset,
		mode:    mode,
		lang:    lang,
		speaker: speaker,
		voice:   voiceLang,
		traceId: traceID(r.Context()),
	})
	if err != nil {
		if errors.Is(r.Context().Err(), context.Canceled) {
			log.Warn("Client went away before the job finished", "item", asset.ItemID)
			return
		}
		writeError(w, r, fmt.Errorf("%w: %w", pipelineErrors.ErrPipelineTimeout, err))
		return
	}
	if out.Failed() {
		WriteErrorResponse(w, r, out.Error.Code, out.Error.Kind, out.Error.Message)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToUploadResponse(out))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current state of an upload job using its ID.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse
// @Failure      404  {object}  api.ErrorResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	logRH.FromContext(r.Context()).Debug("Get Status Request", "URL path", r.URL.Path)

	result, isFound := GetJobStatus(r.Context(), id)
	if !isFound {
		writeError(w, r, pipelineErrors.ErrJobNotFound)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// AudioControlHandler godoc
// @Summary      Control playback of a generated file
// @Description  play opens the file with the host player, pause and stop are acknowledged.
// @Tags         Recordings
// @Produce      json
// @Param        action      path   string  true  "play, pause or stop"
// @Param        audio_path  query  string  true  "File name or path inside the audio directory"
// @Success      200  {object}  api.AudioControlResponse
// @Failure      400  {object}  api.ErrorResponse  "Invalid action or path"
// @Failure      404  {object}  api.ErrorResponse  "Audio file not found"
// @Router       /audio-control/{action} [get]
func AudioControlHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	action := utils.GetChiURLParam(r, "action")
	audioPath := r.URL.Query().Get("audio_path")

	msg, err := handlerInstance.deps.Library.Control(r.Context(), action, audioPath)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.AudioControlResponse{Action: action, AudioPath: audioPath, Message: msg})
}

// LatestRecordingsHandler godoc
// @Summary      List the newest generated audio files
// @Tags         Recordings
// @Produce      json
// @Param        limit  query  int  false  "How many, at most 50"  default(6)
// @Success      200  {object}  api.LatestRecordingsResponse
// @Router       /latest-recordings [get]
func LatestRecordingsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	files, err := handlerInstance.deps.Library.Latest(queryInt(r, "limit"))
	if err != nil {
		logRH.FromContext(r.Context()).Error("Listing recordings failed", "err", err)
		writeError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToLatestRecordings(files))
}

// GetWaveformHandler godoc
// @Summary      Waveform of a recording
// @Description  Renders the amplitude plot of the given recording, or of the latest one when recording_id is omitted.
// @Tags         Recordings
// @Produce      png
// @Param        recording_id  query  string  false  "Recording handle from /upload-image"
// @Success      200  {file}    binary
// @Failure      404  {object}  api.ErrorResponse  "no audio found"
// @Router       /get-waveform [get]
func GetWaveformHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	path, err := handlerInstance.deps.Renderer.RenderFor(r.Context(), r.URL.Query().Get("recording_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, path)
}

// SearchHandler godoc
// @Summary      Similarity search over indexed captions
// @Tags         Pipeline
// @Produce      json
// @Param        q      query  string  true   "Query text"
// @Param        limit  query  int     false  "Result count, at most 20"  default(5)
// @Success      200  {object}  api.SearchResponse
// @Failure      400  {object}  api.ErrorResponse  "Missing query"
// @Failure      500  {object}  api.ErrorResponse  "Downstream failure"
// @Router       /search [get]
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	query := r.URL.Query().Get("q")
	hits, err := handlerInstance.deps.Pipeline.Search(r.Context(), query, queryInt(r, "limit"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSearchResponse(query, hits))
}

// queryInt returns 0 for a missing or malformed value, callers treat 0 as "use the default".
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
