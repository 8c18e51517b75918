// Copyright 2025 Poiesic Systems
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

package gdrive

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/poiesic/distill/sources"
)

// classify maps a Drive API error to a source sentinel. A 401 means
// the access token is no longer valid and the owner must reconnect.
// Everything else from the API is an upstream fault.
func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized {
			return fmt.Errorf("%w: drive returned %d", sources.ErrAuthExpired, apiErr.Code)
		}
		return fmt.Errorf("%w: drive returned %d: %s", sources.ErrUpstream, apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("%w: %v", sources.ErrUpstream, err)
}
