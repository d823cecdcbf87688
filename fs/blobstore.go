package fs

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/readdoc"
)

// Ensure BlobStore implements readdoc.ObjectStore at compile time.
var _ readdoc.ObjectStore = (*BlobStore)(nil)

// FilesPath is the URL path prefix signed links are served under.
const FilesPath = "/files/"

// BlobStore implements readdoc.ObjectStore on a local directory.
// Object keys are slash-separated relative paths below the root.
// Download links carry an HMAC-SHA256 signature over the key and expiry.
type BlobStore struct {
	root    string
	key     []byte
	baseURL string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewBlobStore creates a BlobStore rooted at root. Links are signed with
// signingKey and built on baseURL (e.g. "https://readdoc.example.com").
func NewBlobStore(root string, signingKey []byte, baseURL string) *BlobStore {
	return &BlobStore{
		root:    root,
		key:     signingKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Get reads an object from disk.
func (s *BlobStore) Get(ctx context.Context, key string) (*readdoc.Object, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, readdoc.Errorf(readdoc.ENOTFOUND, "Object not found.")
	} else if err != nil {
		return nil, err
	}

	return &readdoc.Object{Key: key, ContentType: contentType(key), Data: data}, nil
}

// Put writes an object atomically, creating parent directories as needed.
// The content type is derived from the key's extension on read.
func (s *BlobStore) Put(ctx context.Context, obj *readdoc.Object) error {
	p, err := s.path(obj.Key)
	if err != nil {
		return err
	}
	return WriteFile(p, obj.Data, 0644)
}

// Delete removes an object.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); errors.Is(err, os.ErrNotExist) {
		return readdoc.Errorf(readdoc.ENOTFOUND, "Object not found.")
	} else if err != nil {
		return err
	}
	return nil
}

// SignURL returns a link to key under FilesPath that expires after ttl.
func (s *BlobStore) SignURL(ctx context.Context, key string, ttl time.Duration) (string, time.Time, error) {
	if _, err := s.path(key); err != nil {
		return "", time.Time{}, err
	}

	expires := s.now().Add(ttl).Truncate(time.Second)
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires.Unix(), 10))
	q.Set("signature", s.sign(key, expires.Unix()))

	u := s.baseURL + FilesPath + escapeKey(key) + "?" + q.Encode()
	return u, expires, nil
}

// Verify checks a link's expiry and signature for key.
// Returns EFORBIDDEN if the link is expired or the signature does not match.
func (s *BlobStore) Verify(key, expires, signature string) error {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return readdoc.Errorf(readdoc.EFORBIDDEN, "Invalid link.")
	}
	want := s.sign(key, exp)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return readdoc.Errorf(readdoc.EFORBIDDEN, "Invalid link.")
	}
	if s.now().Unix() > exp {
		return readdoc.Errorf(readdoc.EFORBIDDEN, "Link expired.")
	}
	return nil
}

func (s *BlobStore) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(key))
	mac.Write([]byte{'\n'})
	mac.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *BlobStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// path maps key to a file below the root.
func (s *BlobStore) path(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// ValidateKey returns EINVALID unless key is a clean relative slash path
// that stays below the store root.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return readdoc.Errorf(readdoc.EINVALID, "object key required")
	case strings.HasPrefix(key, "/"), strings.Contains(key, `\`):
		return readdoc.Errorf(readdoc.EINVALID, "invalid object key %q", key)
	case path.Clean(key) != key:
		return readdoc.Errorf(readdoc.EINVALID, "invalid object key %q", key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." || seg == "." {
			return readdoc.Errorf(readdoc.EINVALID, "invalid object key %q", key)
		}
	}
	return nil
}

func escapeKey(key string) string {
	segs := strings.Split(key, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}

func contentType(key string) string {
	ext := path.Ext(key)
	if ext == ".docx" {
		return readdoc.DocxContentType
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
