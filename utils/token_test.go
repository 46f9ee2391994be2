package utils

import "testing"

func TestJwtRoundTrip(t *testing.T) {
	t.Setenv("TOKEN_HOUR_LIFESPAN", "1")

	token, err := JwtGenerate(42, "payroll-ops")
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := JwtValidate(token)
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Valid {
		t.Fatal("issued token does not validate")
	}
	claims, ok := parsed.Claims.(*JwtCustomClaim)
	if !ok {
		t.Fatalf("claims type %T", parsed.Claims)
	}
	if claims.ID != 42 || claims.Username != "payroll-ops" {
		t.Errorf("claims = %d/%q", claims.ID, claims.Username)
	}
}

func TestJwtGenerateRequiresLifespan(t *testing.T) {
	t.Setenv("TOKEN_HOUR_LIFESPAN", "")
	if _, err := JwtGenerate(1, "ops"); err == nil {
		t.Error("missing TOKEN_HOUR_LIFESPAN accepted")
	}
}

func TestJwtValidateRejectsGarbage(t *testing.T) {
	if _, err := JwtValidate("not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}
}
