package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadListingImage(t *testing.T) {
	storage := new(MockImageStorage)
	uc := NewImageUsecase(storage, logger.NewNop())
	data := []byte{0x89, 'P', 'N', 'G'}

	storage.On("Upload", mock.Anything, "tomato.png", "image/png", data).Return("http://minio/listing-images/listings/x.png", nil).Once()

	url, err := uc.UploadListingImage(context.Background(), farmerU1, "tomato.png", "image/png", data)

	require.NoError(t, err)
	assert.Equal(t, "http://minio/listing-images/listings/x.png", url)
	storage.AssertExpectations(t)
}

func TestUploadListingImage_Rejects(t *testing.T) {
	storage := new(MockImageStorage)
	uc := NewImageUsecase(storage, logger.NewNop())

	_, err := uc.UploadListingImage(context.Background(), nobody, "a.png", "image/png", []byte{1})
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))

	_, err = uc.UploadListingImage(context.Background(), farmerU1, "a.txt", "text/plain", nil)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Fields, "image")
	assert.Contains(t, de.Fields, "content_type")

	_, err = uc.UploadListingImage(context.Background(), farmerU1, "big.png", "image/png", make([]byte, MaxImageBytes+1))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadListingImage_StorageFailure(t *testing.T) {
	storage := new(MockImageStorage)
	uc := NewImageUsecase(storage, logger.NewNop())
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket missing"))

	_, err := uc.UploadListingImage(context.Background(), farmerU1, "a.png", "image/png", []byte{1})

	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}
