package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

var _ repository.ImageRepository = (*ImageRepo)(nil)

// ImageRepo implementación de ImageRepository.
type ImageRepo struct {
	q Querier
}

// NewImageRepository construye el adaptador.
func NewImageRepository(q Querier) *ImageRepo {
	return &ImageRepo{q: q}
}

// Create persiste una imagen de propiedad.
func (r *ImageRepo) Create(img *entity.PropertyImage) error {
	query := `
		INSERT INTO property_images (id, property_id, url, caption, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		img.ID, img.PropertyID, img.URL, nullIfEmpty(img.Caption), img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	return nil
}

// GetByID devuelve la imagen o nil si no existe.
func (r *ImageRepo) GetByID(id string) (*entity.PropertyImage, error) {
	query := `SELECT id, property_id, url, COALESCE(caption, ''), created_at FROM property_images WHERE id = $1`
	var img entity.PropertyImage
	err := r.q.QueryRow(context.Background(), query, id).
		Scan(&img.ID, &img.PropertyID, &img.URL, &img.Caption, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get image: %w", err)
	}
	return &img, nil
}

// ListByProperty devuelve las imágenes de la propiedad en orden de carga.
func (r *ImageRepo) ListByProperty(propertyID string) ([]*entity.PropertyImage, error) {
	query := `
		SELECT id, property_id, url, COALESCE(caption, ''), created_at
		FROM property_images WHERE property_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var images []*entity.PropertyImage
	for rows.Next() {
		var img entity.PropertyImage
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.URL, &img.Caption, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, &img)
	}
	return images, rows.Err()
}

// Delete elimina una imagen.
func (r *ImageRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM property_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
