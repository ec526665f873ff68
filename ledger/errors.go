// SPDX-License-Identifier: Apache-2.0
package ledger

import (
	"github.com/pkg/errors"
)

var (
	// ErrNetworkSubmission a submission failed before a result code was produced.
	ErrNetworkSubmission = errors.New("submission failed")
	// ErrUnknownAccount an account is not present on the ledger.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrAlreadyAutofilled an envelope was passed to Autofill twice.
	ErrAlreadyAutofilled = errors.New("envelope already autofilled")
	// ErrNotSubmittable an envelope misses signatures or autofill data.
	ErrNotSubmittable = errors.New("envelope not submittable")
)
