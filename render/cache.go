// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package render

import (
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/sha3"
)

const (
	// rendered images are only reused within one session
	renderCacheExpiration = 30 * time.Minute
	renderCacheCleanup    = 5 * time.Minute

	// re-probe for the dot binary now and then so installing graphviz
	// mid-session is picked up
	availabilityExpiration = time.Minute

	availabilityPrefix = "available:"
	imagePrefix        = "image:"
)

// NewRenderCache creates the cache shared by one Renderer
func NewRenderCache() *cache.Cache {
	return cache.New(renderCacheExpiration, renderCacheCleanup)
}

// digest identifies one DOT document rendered to one output format
func digest(format string, dot []byte) string {
	h := sha3.New256()
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write(dot)
	return hex.EncodeToString(h.Sum(nil))
}

func cacheImage(c *cache.Cache, key string, path string) {
	c.Set(imagePrefix+key, path, renderCacheExpiration)
}

func getImage(c *cache.Cache, key string) (string, bool) {
	val, ok := c.Get(imagePrefix + key)
	if !ok {
		return "", false
	}
	return val.(string), true
}

func cacheAvailable(c *cache.Cache, binary string, ok bool) {
	c.Set(availabilityPrefix+binary, ok, availabilityExpiration)
}

func getAvailable(c *cache.Cache, binary string) (available bool, known bool) {
	val, found := c.Get(availabilityPrefix + binary)
	if !found {
		return false, false
	}
	return val.(bool), true
}
