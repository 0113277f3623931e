package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"sync"
	"testing"

	"github.com/akolanti/CaptionSpeech/internal/api"
	"github.com/akolanti/CaptionSpeech/internal/data/store"
	"github.com/akolanti/CaptionSpeech/internal/job"
	"github.com/akolanti/CaptionSpeech/internal/pipeline"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/caption"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/indexer"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/recordings"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/speech"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/upload"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/vectorDB"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/waveform"
	"github.com/akolanti/CaptionSpeech/internal/worker"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCaption struct{}

func (stubCaption) Caption(context.Context, caption.Request) (string, error) {
	return "a plain red square", nil
}

type stubEmbedder struct{}

func (stubEmbedder) GetEmbedding(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, 8)
	for i, r := range text {
		v[i%len(v)] += float32(r % 5)
	}
	return v, nil
}

type stubEngine struct{}

func (stubEngine) Synthesize(context.Context, string, string, string) (speech.PCM, error) {
	samples := make([]int, 2400)
	for i := range samples {
		samples[i] = (i%40 - 20) * 900
	}
	return speech.PCM{Samples: samples, SampleRate: 24000, BitDepth: 16}, nil
}

type testEnv struct {
	router     chi.Router
	scratchDir string
	audioDir   string
}

var (
	envOnce sync.Once
	env     testEnv
)

// setup wires the real job service and worker pool once per test binary,
// the worker package keeps its state in globals.
func setup(t *testing.T) testEnv {
	t.Helper()
	envOnce.Do(func() {
		root, err := os.MkdirTemp("", "captionspeech-handlers")
		if err != nil {
			panic(err)
		}
		env.scratchDir = root + "/scratch"
		env.audioDir = root + "/audio"

		uploads, err := upload.NewStore(env.scratchDir)
		if err != nil {
			panic(err)
		}
		synth, err := speech.New(stubEngine{}, env.audioDir, "http://localhost:8000")
		if err != nil {
			panic(err)
		}
		recs := store.InitInMemoryRecordingStore()
		renderer, err := waveform.NewRenderer(root+"/plots", recs)
		if err != nil {
			panic(err)
		}
		idx := indexer.New(indexer.Options{Index: vectorDB.NewInMemoryIndex(), DocEmbedder: stubEmbedder{}})
		pipelineSvc := pipeline.NewService(caption.New(stubCaption{}), idx, synth, recs, uploads)

		jobSvc := job.InitJobService(job.ServiceConfig{
			JobChannel:        make(chan job.Submission, 10),
			DispatcherChannel: make(chan bool, 10),
			JobStore:          store.InitInMemoryJobStore(),
		})
		worker.InitServices(jobSvc, pipelineSvc)
		worker.InitWorkerPool(make(chan bool), &sync.WaitGroup{})

		InitJobHandler(Dependencies{
			Jobs:     jobSvc,
			Pipeline: pipelineSvc,
			Uploads:  uploads,
			Renderer: renderer,
			Library:  recordings.NewLibrary(env.audioDir, "http://localhost:8000", func(context.Context, string) error { return nil }),
		})

		r := chi.NewRouter()
		r.Get("/health", GetHandler)
		r.Post("/upload-image", UploadImageHandler)
		r.Get("/status/{id}", GetStatusHandler)
		r.Get("/audio-control/{action}", AudioControlHandler)
		r.Get("/latest-recordings", LatestRecordingsHandler)
		r.Get("/get-waveform", GetWaveformHandler)
		r.Get("/search", SearchHandler)
		env.router = r
	})
	return env
}

func redPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadRequestFor(t *testing.T, filename, contentType string, body []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(e testEnv, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func scratchCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

// runs first so the waveform endpoint has nothing to draw yet
func TestGetWaveform_BeforeAnyAudio(t *testing.T) {
	e := setup(t)
	rr := serve(e, httptest.NewRequest(http.MethodGet, "/get-waveform", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "no audio found", body.Error)
	assert.Equal(t, "NoAudio", body.Kind)
}

func TestHealth(t *testing.T) {
	e := setup(t)
	rr := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestUploadImage_Rejections(t *testing.T) {
	e := setup(t)
	before := scratchCount(t, e.scratchDir)

	tests := []struct {
		name        string
		filename    string
		contentType string
		fields      map[string]string
		wantKind    string
	}{
		{"Text_File", "notes.txt", "text/plain", nil, "InvalidFileType"},
		{"Unknown_Speaker", "red.png", "image/png", map[string]string{"speaker": "Nobody"}, "InvalidSpeaker"},
		{"Unknown_Mode", "red.png", "image/png", map[string]string{"description_mode": "poem"}, "InvalidDescriptionMode"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(e, uploadRequestFor(t, tc.filename, tc.contentType, redPNG(t), tc.fields))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var body api.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.wantKind, body.Kind)
			assert.NotEmpty(t, body.Error)
		})
	}
	assert.Equal(t, before, scratchCount(t, e.scratchDir), "rejected uploads must not touch scratch")
}

func TestUploadImage_MissingFile(t *testing.T) {
	e := setup(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("lang", "en"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := serve(e, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUploadImage_EndToEnd(t *testing.T) {
	e := setup(t)

	rr := serve(e, uploadRequestFor(t, "red.png", "image/png", redPNG(t), map[string]string{"description_mode": "summary"}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var out api.UploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "red", out.ItemId)
	assert.Equal(t, "a plain red square", out.Description)
	assert.Equal(t, "inserted", out.IndexStatus)
	assert.NotEmpty(t, out.RecordingId)
	assert.FileExists(t, out.AudioPath)
	assert.Contains(t, out.AudioURL, "/audio/")
	assert.Equal(t, 4, out.WordCount)

	t.Run("Status_Is_Complete", func(t *testing.T) {
		rr := serve(e, httptest.NewRequest(http.MethodGet, "/status/"+out.JobId, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var st api.JobResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
		assert.Equal(t, "COMPLETE", st.Status)
		require.NotNil(t, st.Result)
		assert.Equal(t, out.Description, st.Result.Description)
	})

	t.Run("Second_Upload_Skips_Index", func(t *testing.T) {
		rr := serve(e, uploadRequestFor(t, "red.png", "image/png", redPNG(t), nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var again api.UploadResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &again))
		assert.Equal(t, "skipped", again.IndexStatus)
	})

	t.Run("Waveform_Now_Renders", func(t *testing.T) {
		rr := serve(e, httptest.NewRequest(http.MethodGet, "/get-waveform?recording_id="+out.RecordingId, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	})

	t.Run("Latest_Recordings_Lists_It", func(t *testing.T) {
		rr := serve(e, httptest.NewRequest(http.MethodGet, "/latest-recordings?limit=1", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var latest api.LatestRecordingsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &latest))
		assert.Len(t, latest.Recordings, 1)
	})

	t.Run("Play_It", func(t *testing.T) {
		rr := serve(e, httptest.NewRequest(http.MethodGet, "/audio-control/play?audio_path="+out.AudioPath, nil))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var ctl api.AudioControlResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ctl))
		assert.Equal(t, "Playing audio", ctl.Message)
	})

	t.Run("Search_Finds_It", func(t *testing.T) {
		rr := serve(e, httptest.NewRequest(http.MethodGet, "/search?q=a+plain+red+square", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var res api.SearchResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		require.NotEmpty(t, res.Results)
		assert.Equal(t, "red", res.Results[0].ItemId)
	})
}

func TestGetStatus_NotFound(t *testing.T) {
	e := setup(t)
	rr := serve(e, httptest.NewRequest(http.MethodGet, "/status/does-not-exist", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "JobNotFound", body.Kind)
}

func TestSearch_MissingQuery(t *testing.T) {
	e := setup(t)
	rr := serve(e, httptest.NewRequest(http.MethodGet, "/search", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAudioControl_BadInput(t *testing.T) {
	e := setup(t)

	rr := serve(e, httptest.NewRequest(http.MethodGet, "/audio-control/rewind?audio_path=x.wav", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(e, httptest.NewRequest(http.MethodGet, "/audio-control/play?audio_path=../../etc/passwd", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(e, httptest.NewRequest(http.MethodGet, "/audio-control/play?audio_path=missing.wav", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
