// Package pickuppass renders the QR code a customer shows at pickup.
// The payload is the order identity encrypted with a merchant secret so
// a pass cannot be forged from a screenshot of someone else's order id.
package pickuppass

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"github.com/skip2/go-qrcode"

	"ms-storefront/internal/models"
)

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

type passPayload struct {
	OrderID  string    `json:"orderId"`
	EventID  string    `json:"eventId"`
	PickupAt time.Time `json:"pickupAt"`
	Name     string    `json:"name"`
}

// GeneratePass returns a PNG QR code for the order.
func (g *Generator) GeneratePass(order models.Order) ([]byte, error) {
	data, err := json.Marshal(passPayload{
		OrderID:  order.OrderID,
		EventID:  order.EventID,
		PickupAt: order.PickupAt,
		Name:     order.FirstName + " " + order.LastName,
	})
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
