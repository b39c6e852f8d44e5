package activities

import (
	"encoding/json"
	"fmt"

	"sheep-management/internal/domain/activities/details"
)

// KindOf devuelve el tipo que corresponde al payload.
func KindOf(p details.Payload) (Kind, error) {
	switch p.(type) {
	case details.Vaccination:
		return KindVaccination, nil
	case details.Lambing:
		return KindLambing, nil
	case details.Culling:
		return KindCulling, nil
	case details.Sale:
		return KindSale, nil
	default:
		return "", fmt.Errorf("%w: unsupported details %T", ErrInvalidInput, p)
	}
}

// EncodeDetails serializa el payload al texto JSON que guarda la columna details.
func EncodeDetails(p details.Payload) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%w: details are required", ErrInvalidInput)
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode details: %w", err)
	}
	return string(b), nil
}

// DecodeDetails reconstruye el payload según el tipo de actividad.
func DecodeDetails(kind Kind, raw []byte) (details.Payload, error) {
	switch kind {
	case KindVaccination:
		var v details.Vaccination
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: vaccination details: %v", ErrInvalidInput, err)
		}
		return v, nil
	case KindLambing:
		var v details.Lambing
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: lambing details: %v", ErrInvalidInput, err)
		}
		return v, nil
	case KindCulling:
		var v details.Culling
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: culling details: %v", ErrInvalidInput, err)
		}
		return v, nil
	case KindSale:
		var v details.Sale
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: sale details: %v", ErrInvalidInput, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unknown activity %q", ErrInvalidInput, kind)
	}
}

// DecodeInput interpreta el par (activity, details) que llega desde el formulario.
func DecodeInput(kind string, raw json.RawMessage) (Kind, details.Payload, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return "", nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil, fmt.Errorf("%w: details are required", ErrInvalidInput)
	}
	p, err := DecodeDetails(k, raw)
	if err != nil {
		return "", nil, err
	}
	return k, p, nil
}
