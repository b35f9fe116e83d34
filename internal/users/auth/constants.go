// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTTL is the duration a session token remains valid.
	// One day: long enough for a working session, short enough that a
	// leaked cookie ages out quickly.
	SessionTTL = 24 * time.Hour

	// SessionTokenLength is the byte length of the random session token.
	// 32 bytes = 256 bits of entropy, far above the 122-bit floor for
	// unguessable identifiers.
	SessionTokenLength = 32
)
