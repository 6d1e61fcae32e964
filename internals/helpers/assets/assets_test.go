package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duomonggo_backend/internals/configs"
	helper "duomonggo_backend/internals/helpers"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func fileHeader(t *testing.T, field, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(body, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func TestNormalizeImage_DownscalesToWebP(t *testing.T) {
	out, err := NormalizeImage(pngBytes(t, 2000, 1000))
	require.NoError(t, err)

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestNormalizeImage_KeepsSmallImages(t *testing.T) {
	out, err := NormalizeImage(pngBytes(t, 320, 200))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestNormalizeImage_RejectsNonImage(t *testing.T) {
	_, err := NormalizeImage([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, err = NormalizeImage(nil)
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestBuildObjectKey(t *testing.T) {
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	key := BuildObjectKey("/questions/", "My Photo (1).PNG", now)

	assert.True(t, strings.HasPrefix(key, "questions/2024/03/09/my-photo-1-"), key)
	assert.True(t, strings.HasSuffix(key, ".webp"), key)

	assert.Contains(t, BuildObjectKey("", "???.jpg", now), "misc/2024/03/09/image-")
}

type fakeStore struct {
	key, contentType string
	body             []byte
	err              error
}

func (f *fakeStore) Put(_ context.Context, key string, body []byte, ct string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key, f.body, f.contentType = key, body, ct
	return "https://cdn.example.com/" + key, nil
}

func TestImageUploader_Upload(t *testing.T) {
	store := &fakeStore{}
	up := NewImageUploader(store)

	url, err := up.Upload(context.Background(), "accounts", fileHeader(t, "image", "avatar.png", pngBytes(t, 64, 64)))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/"+store.key, url)
	assert.True(t, strings.HasPrefix(store.key, "accounts/"))
	assert.Equal(t, "image/webp", store.contentType)
	assert.NotEmpty(t, store.body)
}

func TestImageUploader_StoreFailureIsUpstream(t *testing.T) {
	up := NewImageUploader(&fakeStore{err: errors.New("503 from bucket")})

	_, err := up.Upload(context.Background(), "accounts", fileHeader(t, "image", "a.png", pngBytes(t, 8, 8)))
	require.Error(t, err)
	assert.Equal(t, helper.KindUpstream, helper.KindOf(AsAppError(err)))
}

func TestAsAppError(t *testing.T) {
	assert.NoError(t, AsAppError(nil))
	assert.Equal(t, helper.KindInvalidInput, helper.KindOf(AsAppError(ErrNotAnImage)))
	assert.Equal(t, helper.KindInvalidInput, helper.KindOf(AsAppError(ErrTooLarge)))
	assert.Equal(t, helper.KindUpstream, helper.KindOf(AsAppError(ErrDisabled)))
}

func TestS3Store_PutPathStyle(t *testing.T) {
	var gotPath, gotCT string
	var gotLen int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotLen = len(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewS3Store(context.Background(), &configs.AppConfig{
		S3Region:         "us-east-1",
		S3Endpoint:       srv.URL,
		S3AccessKey:      "minioadmin",
		S3SecretKey:      "minioadmin",
		S3Bucket:         "duomonggo",
		S3ForcePathStyle: true,
	})
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "questions/x.webp", []byte("webpdata"), "image/webp")
	require.NoError(t, err)

	assert.Equal(t, "/duomonggo/questions/x.webp", gotPath)
	assert.Equal(t, "image/webp", gotCT)
	assert.Equal(t, len("webpdata"), gotLen)
	assert.Equal(t, srv.URL+"/duomonggo/questions/x.webp", url)
}

func TestNewFromConfig(t *testing.T) {
	up, err := NewFromConfig(context.Background(), &configs.AppConfig{AssetDriver: "none"})
	require.NoError(t, err)
	_, err = up.Upload(context.Background(), "x", nil)
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = NewFromConfig(context.Background(), &configs.AppConfig{AssetDriver: "ftp"})
	assert.Error(t, err)

	_, err = NewFromConfig(context.Background(), &configs.AppConfig{AssetDriver: "oss"})
	assert.Error(t, err)
}
