package listing

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/carprompt/carsearch/internal/domain"
)

// listingDoc is the storage shape of a listing. The embedding is packed as
// little-endian float32 bytes so JSON encoding base64s it instead of emitting
// thousands of decimal literals.
type listingDoc struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Make         string   `json:"make"`
	Model        string   `json:"model,omitempty"`
	Year         int      `json:"year"`
	Price        float64  `json:"price"`
	Mileage      *float64 `json:"mileage,omitempty"`
	FuelType     string   `json:"fuel_type,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	BodyType     string   `json:"body_type,omitempty"`
	Location     string   `json:"location,omitempty"`
	Images       []string `json:"images,omitempty"`
	Embedding    []byte   `json:"embedding,omitempty"`
}

func toDoc(l *domain.Listing) listingDoc {
	return listingDoc{
		ID:           l.ID,
		Title:        l.Title,
		Description:  l.Description,
		Make:         l.Make,
		Model:        l.Model,
		Year:         l.Year,
		Price:        l.Price,
		Mileage:      l.Mileage,
		FuelType:     l.FuelType,
		Transmission: l.Transmission,
		BodyType:     l.BodyType,
		Location:     l.Location,
		Images:       l.Images,
		Embedding:    vectorToBytes(l.Embedding),
	}
}

func (d *listingDoc) toDomain() (domain.Listing, error) {
	vec, err := bytesToVector(d.Embedding)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("listing %s: %w", d.ID, err)
	}
	return domain.Listing{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Make:         d.Make,
		Model:        d.Model,
		Year:         d.Year,
		Price:        d.Price,
		Mileage:      d.Mileage,
		FuelType:     d.FuelType,
		Transmission: d.Transmission,
		BodyType:     d.BodyType,
		Location:     d.Location,
		Images:       d.Images,
		Embedding:    vec,
	}, nil
}

// vectorToBytes packs []float32 as little-endian bytes, 4 per element.
func vectorToBytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToVector unpacks the little-endian float32 encoding.
func bytesToVector(data []byte) ([]float32, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding bytes: len=%d not a multiple of 4", len(data))
	}
	v := make([]float32, len(data)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return v, nil
}
