// Package attachment реализует кодирование загруженного документа
// (скан удостоверения) в base64 для передачи внутри JSON-записи.
// Файлы больше лимита отклоняются до чтения содержимого.
package attachment

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// MaxSize — максимальный размер документа, 5 МБ.
const MaxSize = 5 << 20

// ErrTooLarge возвращается для файлов больше MaxSize.
var ErrTooLarge = errors.New("file is too large, max 5MB")

// Attachment — закодированный документ с метаданными для intake-записи.
type Attachment struct {
	Name   string
	Mime   string
	Base64 string
}

// FromMultipart читает файл из multipart-формы и кодирует его в base64.
// Размер проверяется по заголовку до открытия файла, затем чтение
// ограничено лимитом на случай расхождения с заголовком.
func FromMultipart(fh *multipart.FileHeader) (*Attachment, error) {
	const op = "attachment.FromMultipart"
	if fh.Size > MaxSize {
		return nil, fmt.Errorf("%s: %w", op, ErrTooLarge)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(file, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("%s: %w", op, ErrTooLarge)
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	return &Attachment{
		Name:   fh.Filename,
		Mime:   mime,
		Base64: base64.StdEncoding.EncodeToString(data),
	}, nil
}
