// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reporter

// Handler accumulates the outcome of a parse. KCV parsing is fail-fast: the
// first reported error aborts the parse, so the handler retains exactly one
// error.
type Handler struct {
	err ErrorWithPos
}

// NewHandler creates a new Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// HandleError records err if no error has been recorded yet and returns the
// recorded error. A non-nil return tells the caller to abort.
func (h *Handler) HandleError(err ErrorWithPos) error {
	if h.err == nil {
		h.err = err
	}
	return h.err
}

// Err returns the recorded error, or nil if none was reported.
func (h *Handler) Err() error {
	if h.err == nil {
		return nil
	}
	return h.err
}
