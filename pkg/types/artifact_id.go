// Copyright 2023 Meta Platforms, Inc. and affiliates.
//
// Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:
//
// 1. Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package types

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

// ArtifactID is a content-based ID of a published application image.
//
// It is not a part of the published metadata document, it is only
// kept by catalogs which can store it (and in logs) to be able to
// tell which exact binary was released under a tag.
type ArtifactID [32]byte

var (
	_ driver.Valuer = (*ArtifactID)(nil)
	_ sql.Scanner   = (*ArtifactID)(nil)
)

// NewArtifactID calculates an ArtifactID based on the image content.
func NewArtifactID(image []byte) ArtifactID {
	return blake3.Sum256(image)
}

// String implements fmt.Stringer.
func (id ArtifactID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero returns true if ArtifactID contains the zero value.
func (id ArtifactID) IsZero() bool {
	return bytes.Equal(id[:], make([]byte, len(id)))
}

// Value converts the value to be stored in DB.
func (id ArtifactID) Value() (driver.Value, error) {
	if id.IsZero() {
		return nil, nil
	}
	return id[:], nil
}

// Scan converts DB's value to ArtifactID.
func (id *ArtifactID) Scan(srcI interface{}) error {
	if srcI == nil {
		*id = ArtifactID{}
		return nil
	}

	src, ok := srcI.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, received %T", srcI)
	}

	if len(src) != len(*id) {
		return fmt.Errorf("expected length %d, received %d", len(*id), len(src))
	}

	copy((*id)[:], src)
	return nil
}
