package pgfrontend

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/jeroenrinzema/pgfrontend/internal/buffer"
	"github.com/jeroenrinzema/pgfrontend/pgerror"
)

// AuthKind discriminates the AuthResponse variants carried by an
// Authentication ('R') server message.
type AuthKind int

const (
	AuthOk AuthKind = iota
	AuthCleartextRequired
	AuthMD5Required
	AuthGSSRequired
	AuthSSPIRequired
	AuthGSSContinue
	AuthErrorResponse
)

// AuthResponse is the decoded body of an Authentication message.
type AuthResponse struct {
	Kind       AuthKind
	MD5Salt    [4]byte
	GSSPayload []byte
	Descriptor pgerror.Descriptor
}

// DecodeAuthResponse decodes the sub-code and any trailing payload of an
// Authentication message body.
func DecodeAuthResponse(body []byte) (AuthResponse, error) {
	r := buffer.NewReader(body)

	code, err := r.GetInt32()
	if err != nil {
		return AuthResponse{}, pgerror.NewProtocolError("truncated authentication message")
	}

	switch AuthType(code) {
	case AuthTypeOk:
		return AuthResponse{Kind: AuthOk}, nil
	case AuthTypeCleartext:
		return AuthResponse{Kind: AuthCleartextRequired}, nil
	case AuthTypeMD5:
		salt, err := r.GetBytes(4)
		if err != nil {
			return AuthResponse{}, pgerror.NewProtocolError("missing MD5 salt")
		}
		var out AuthResponse
		out.Kind = AuthMD5Required
		copy(out.MD5Salt[:], salt)
		return out, nil
	case AuthTypeGSS:
		return AuthResponse{Kind: AuthGSSRequired}, nil
	case AuthTypeSSPI:
		return AuthResponse{Kind: AuthSSPIRequired}, nil
	case AuthTypeGSSContinue:
		return AuthResponse{Kind: AuthGSSContinue, GSSPayload: r.GetRemaining()}, nil
	default:
		return AuthResponse{}, pgerror.NewProtocolError("unknown authentication sub-code")
	}
}

// HashMD5Password computes the salted MD5 password response PostgreSQL
// expects for "md5" authentication:
//
//	"md5" + hex(md5(hex(md5(password + user)) + salt))
//
// Both inner digests are rendered as lower-case 32-character hex strings and
// concatenated verbatim with their respective suffixes before the outer
// digest is taken.
func HashMD5Password(user, password string, salt [4]byte) string {
	inner := md5.Sum([]byte(password + user))
	innerHex := hex.EncodeToString(inner[:])

	outer := md5.Sum(append([]byte(innerHex), salt[:]...))
	return "md5" + hex.EncodeToString(outer[:])
}
