package cryptoadapter

import (
	"crypto"
	"crypto/dsa" //nolint:staticcheck // exercising the mandatory DSA verification path
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // exercising the mandatory DSA verification path, which is defined over SHA-1
	"crypto/sha256"
	"math/big"
	"testing"
)

func padBigIntBytes(n *big.Int, size int) []byte {
	b := n.Bytes()
	if len(b) >= size {
		return b[len(b)-size:]
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}

func rsaPublicKeyRdata(t *testing.T, pub *rsa.PublicKey) []byte {
	t.Helper()
	e := big.NewInt(int64(pub.E))
	expBytes := e.Bytes()
	if len(expBytes) > 255 {
		t.Fatalf("unexpectedly large exponent for test key")
	}
	out := []byte{byte(len(expBytes))}
	out = append(out, expBytes...)
	out = append(out, pub.N.Bytes()...)
	return out
}

// TestVerifyRSASHA256RoundTrip signs a preimage with a freshly generated
// RSA key and checks Adapter.Verify accepts it.
func TestVerifyRSASHA256RoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	preimage := []byte("example.com. 3600 IN A 10.0.0.1")
	h := sha256.Sum256(preimage)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, h[:])
	if err != nil {
		t.Fatalf("rsa.SignPKCS1v15: %v", err)
	}

	pubRdata := rsaPublicKeyRdata(t, &priv.PublicKey)
	a := Adapter{}
	if got := a.Verify(RSASHA256, preimage, sig, pubRdata); got != Secure {
		t.Errorf("Verify = %v, want Secure", got)
	}
}

// TestVerifyRSASHA256RejectsMutatedSignature checks a flipped signature
// byte is reported Bogus, not Unsupported: this is a demonstrated
// forgery, not an operational failure.
func TestVerifyRSASHA256RejectsMutatedSignature(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	preimage := []byte("example.com. 3600 IN A 10.0.0.1")
	h := sha256.Sum256(preimage)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, h[:])
	if err != nil {
		t.Fatalf("rsa.SignPKCS1v15: %v", err)
	}
	sig[0] ^= 0xFF

	pubRdata := rsaPublicKeyRdata(t, &priv.PublicKey)
	a := Adapter{}
	if got := a.Verify(RSASHA256, preimage, sig, pubRdata); got != Bogus {
		t.Errorf("Verify = %v, want Bogus", got)
	}
}

// TestVerifyRSASHA256RejectsMutatedPreimage checks that a preimage
// reconstructed incorrectly upstream fails the same way a forged
// signature does.
func TestVerifyRSASHA256RejectsMutatedPreimage(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	preimage := []byte("example.com. 3600 IN A 10.0.0.1")
	h := sha256.Sum256(preimage)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, h[:])
	if err != nil {
		t.Fatalf("rsa.SignPKCS1v15: %v", err)
	}

	pubRdata := rsaPublicKeyRdata(t, &priv.PublicKey)
	a := Adapter{}
	tampered := append([]byte{}, preimage...)
	tampered[0] ^= 0xFF
	if got := a.Verify(RSASHA256, tampered, sig, pubRdata); got != Bogus {
		t.Errorf("Verify = %v, want Bogus", got)
	}
}

// TestVerifyDSARoundTrip signs a preimage with a freshly generated DSA
// key (RFC 2536 wire format) and checks Adapter.Verify accepts it.
func TestVerifyDSARoundTrip(t *testing.T) {
	var params dsa.Parameters
	if err := dsa.GenerateParameters(&params, rand.Reader, dsa.L1024N160); err != nil {
		t.Fatalf("dsa.GenerateParameters: %v", err)
	}
	var priv dsa.PrivateKey
	priv.Parameters = params
	if err := dsa.GenerateKey(&priv, rand.Reader); err != nil {
		t.Fatalf("dsa.GenerateKey: %v", err)
	}

	preimage := []byte("example.com. 3600 IN A 10.0.0.1")
	sum := sha1.Sum(preimage) //nolint:gosec
	r, s, err := dsa.Sign(rand.Reader, &priv, sum[:])
	if err != nil {
		t.Fatalf("dsa.Sign: %v", err)
	}

	const modLen = 128 // 1024-bit P/G/Y
	const t8 = 8        // (modLen-64)/8
	pubRdata := append([]byte{t8}, padBigIntBytes(priv.Q, 20)...)
	pubRdata = append(pubRdata, padBigIntBytes(priv.P, modLen)...)
	pubRdata = append(pubRdata, padBigIntBytes(priv.G, modLen)...)
	pubRdata = append(pubRdata, padBigIntBytes(priv.Y, modLen)...)

	sigRdata := append([]byte{t8}, padBigIntBytes(r, 20)...)
	sigRdata = append(sigRdata, padBigIntBytes(s, 20)...)

	a := Adapter{}
	if got := a.Verify(DSA, preimage, sigRdata, pubRdata); got != Secure {
		t.Errorf("Verify = %v, want Secure", got)
	}
}

// TestVerifyUnsupportedAlgorithm checks an algorithm absent from the
// dispatch table yields Unsupported rather than Bogus: no primitive
// ran, so no forgery was demonstrated.
func TestVerifyUnsupportedAlgorithm(t *testing.T) {
	a := Adapter{}
	if got := a.Verify(15 /* Ed25519 */, []byte("x"), []byte("y"), []byte("z")); got != Unsupported {
		t.Errorf("Verify = %v, want Unsupported", got)
	}
}

// TestVerifyMalformedPublicKeyIsUnsupported checks a structurally
// invalid RSA key (too short to contain even the exponent length byte)
// is Unsupported, not Bogus.
func TestVerifyMalformedPublicKeyIsUnsupported(t *testing.T) {
	a := Adapter{}
	if got := a.Verify(RSASHA256, []byte("x"), []byte("sig"), nil); got != Unsupported {
		t.Errorf("Verify = %v, want Unsupported", got)
	}
}

// TestIsSupportedMatchesDispatchTable spot-checks a few algorithm
// numbers against the mandatory set RFC 4034 Appendix A.1 names.
func TestIsSupportedMatchesDispatchTable(t *testing.T) {
	for _, alg := range []uint8{RSAMD5, DSA, RSASHA1, DSANSEC3SHA1, RSASHA1NSEC3SHA1, RSASHA256, RSASHA512} {
		if !IsSupported(alg) {
			t.Errorf("expected algorithm %d to be supported", alg)
		}
	}
	if IsSupported(15) {
		t.Errorf("expected Ed25519 (15) to be unsupported")
	}
}

// TestKeyTagGenericFormula hand-verifies the running-sum formula against
// a 4-byte rdata chosen so the arithmetic has no carry.
func TestKeyTagGenericFormula(t *testing.T) {
	rdata := []byte{0x01, 0x01, 0x03, 0x05}
	if got := KeyTag(RSASHA1, rdata); got != 1030 {
		t.Errorf("KeyTag = %d, want 1030", got)
	}
}

// TestKeyTagRSAMD5SpecialCase hand-verifies the historical RSA/MD5
// key-tag formula: the 16-bit big-endian value of the two octets
// preceding the last octet of the public key.
func TestKeyTagRSAMD5SpecialCase(t *testing.T) {
	rdata := []byte{0x00, 0x00, 0x03, 0x01, 0xAA, 0xBB, 0xCC, 0xDD}
	if got := KeyTag(RSAMD5, rdata); got != 0xBBCC {
		t.Errorf("KeyTag = 0x%04x, want 0xbbcc", got)
	}
}

// TestKeyTagIsDeterministic checks repeated calls on the same input
// agree, a property the driver's keytag pre-filter depends on.
func TestKeyTagIsDeterministic(t *testing.T) {
	rdata := []byte{0x01, 0x00, 0x03, 0x08, 0xDE, 0xAD, 0xBE, 0xEF}
	a := KeyTag(RSASHA256, rdata)
	b := KeyTag(RSASHA256, rdata)
	if a != b {
		t.Errorf("expected deterministic key tag, got %d then %d", a, b)
	}
}

// TestAlgorithmName checks supported algorithms get their RFC mnemonic
// and anything absent from the dispatch table falls back to "unknown".
func TestAlgorithmName(t *testing.T) {
	cases := []struct {
		algorithm uint8
		want      string
	}{
		{RSASHA256, "RSASHA256"},
		{RSASHA1, "RSASHA1"},
		{DSA, "DSA"},
		{15, "unknown"},
	}
	for _, tc := range cases {
		if got := AlgorithmName(tc.algorithm); got != tc.want {
			t.Errorf("AlgorithmName(%d) = %q, want %q", tc.algorithm, got, tc.want)
		}
	}
}
