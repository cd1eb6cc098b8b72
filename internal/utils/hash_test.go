// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/MKhiriev/sky-shelf/models"
)

func TestInitHasherPoolAndHash(t *testing.T) {
	key := "secret-key"
	InitHasherPool(key)

	data := []byte("test-data")

	sum1 := Hash(data)
	sum2 := Hash(data)

	if len(sum1) == 0 {
		t.Fatal("hash result is empty")
	}

	if !bytes.Equal(sum1, sum2) {
		t.Fatal("hash must be deterministic for the same input")
	}

	// verify against direct HMAC computation
	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	expected := h.Sum(nil)

	if !bytes.Equal(sum1, expected) {
		t.Fatalf("unexpected hash value\nwant: %x\ngot:  %x", expected, sum1)
	}
}

const testHashKey = "test-secret-key"

func TestHash_WithRealPage(t *testing.T) {
	InitHasherPool(testHashKey)

	page := models.PostsPage{
		Page:  models.Page[models.PostView]{Items: []models.PostView{{URI: "at://did:plc:a/app.bsky.feed.post/1"}}, PageCount: 1},
		Total: 1,
	}

	body, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("failed to marshal page: %v", err)
	}

	got := hex.EncodeToString(Hash(body))

	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))

	if got != want {
		t.Errorf("Hash mismatch:\n  got:  %s\n  want: %s", got, want)
	}
}

// TestHash_DifferentKeys checks that different keys yield different digests.
func TestHash_DifferentKeys(t *testing.T) {
	data := []byte(`{"posts":[]}`)

	InitHasherPool("key-one")
	hash1 := hex.EncodeToString(Hash(data))

	InitHasherPool("key-two")
	hash2 := hex.EncodeToString(Hash(data))

	if hash1 == hash2 {
		t.Error("different keys must produce different hashes")
	}
}

func TestETag_QuotedAndStable(t *testing.T) {
	InitHasherPool(testHashKey)

	tag := ETag([]byte("body"))

	if !strings.HasPrefix(tag, `"`) || !strings.HasSuffix(tag, `"`) {
		t.Errorf("etag must be quoted, got %s", tag)
	}
	if tag != ETag([]byte("body")) {
		t.Error("etag must be deterministic")
	}
	if tag == ETag([]byte("other")) {
		t.Error("different bodies must produce different etags")
	}
}

func TestHashString(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("k"))
	mac.Write([]byte("data"))
	want := hex.EncodeToString(mac.Sum(nil))

	if got := HashString("data", "k"); got != want {
		t.Errorf("HashString mismatch:\n  got:  %s\n  want: %s", got, want)
	}
}
