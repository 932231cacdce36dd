package memory

import (
	"fmt"

	"github.com/iho/bankcore/internal/domain"
)

func storageFailure(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrStorageFailure}, args...)...)
}
