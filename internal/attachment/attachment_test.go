package attachment

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMultipart собирает multipart-запрос с одним файловым полем.
func buildMultipart(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("document", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["document"][0]
}

func TestFromMultipart(t *testing.T) {
	content := []byte("%PDF-1.4 test document")
	fh := buildMultipart(t, "passport.pdf", content)

	att, err := FromMultipart(fh)
	require.NoError(t, err)

	assert.Equal(t, "passport.pdf", att.Name)
	assert.NotEmpty(t, att.Mime)
	decoded, err := base64.StdEncoding.DecodeString(att.Base64)
	require.NoError(t, err)
	assert.Equal(t, content, decoded)
}

func TestFromMultipart_TooLarge(t *testing.T) {
	// файл на один байт больше лимита отклоняется до кодирования
	fh := buildMultipart(t, "huge.jpg", bytes.Repeat([]byte("a"), MaxSize+1))

	att, err := FromMultipart(fh)
	assert.Nil(t, att)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFromMultipart_EmptyFile(t *testing.T) {
	fh := buildMultipart(t, "empty.png", nil)

	att, err := FromMultipart(fh)
	require.NoError(t, err)
	assert.Empty(t, att.Base64)
}
