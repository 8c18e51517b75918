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


package sources

import "errors"

var (
	// ErrAuthExpired indicates the stored credential is absent or expired.
	ErrAuthExpired = errors.New("source credential absent or expired")

	// ErrUpstream indicates a failure response from the external source API.
	ErrUpstream = errors.New("upstream source API error")

	// ErrUnsupportedFormat indicates an item type the extractor cannot read.
	ErrUnsupportedFormat = errors.New("unsupported item format")

	// ErrExtractionFailed indicates an item was fetched but yielded no content.
	ErrExtractionFailed = errors.New("could not extract content from item")
)
