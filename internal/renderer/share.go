package renderer

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

// ShareURL points the playback page at a saved scene key.
func ShareURL(base, key string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("share url %q must be absolute", base)
	}
	q := u.Query()
	q.Set("scene", key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ShareQR encodes content as a size x size PNG QR code.
func ShareQR(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}

func WriteShareQR(content string, size int, path string) error {
	return qrcode.WriteFile(content, qrcode.Medium, size, path)
}
