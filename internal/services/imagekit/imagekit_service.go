package imagekit

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const signatureTTL = 30 * time.Minute

type ImageKitService struct {
	PublicKey   string
	PrivateKey  string
	URLEndpoint string
}

func NewImageKitService(publicKey, privateKey, urlEndpoint string) *ImageKitService {
	return &ImageKitService{
		PublicKey:   publicKey,
		PrivateKey:  privateKey,
		URLEndpoint: urlEndpoint,
	}
}

// AuthParams are handed to the browser for a direct upload.
type AuthParams struct {
	Token       string `json:"token"`
	Expire      int64  `json:"expire"`
	Signature   string `json:"signature"`
	PublicKey   string `json:"publicKey"`
	URLEndpoint string `json:"urlEndpoint,omitempty"`
}

func (s *ImageKitService) Sign(now time.Time) AuthParams {
	token := uuid.NewString()
	expire := now.Add(signatureTTL).Unix()
	return AuthParams{
		Token:       token,
		Expire:      expire,
		Signature:   s.generateSignature(token + strconv.FormatInt(expire, 10)),
		PublicKey:   s.PublicKey,
		URLEndpoint: s.URLEndpoint,
	}
}

// HMAC-SHA1( token + expire, private_key )
func (s *ImageKitService) generateSignature(data string) string {
	h := hmac.New(sha1.New, []byte(s.PrivateKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
