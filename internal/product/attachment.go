package product

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kanthai/launchpad/internal/activity"
	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/store"
	"gorm.io/gorm"
)

// AttachOpts holds parameters for recording a file attachment. The file
// lives in an external drive; only the reference is stored.
type AttachOpts struct {
	ProductID     string
	ProductTaskID string
	Type          string
	DriveURL      string
	Actor         string
}

// AddAttachment records an attachment against a product, optionally tied
// to one of its tasks.
func AddAttachment(db *gorm.DB, opts AttachOpts) (*models.Attachment, error) {
	if opts.ProductID == "" {
		return nil, fmt.Errorf("product: attachment needs a product id")
	}
	if opts.DriveURL == "" {
		return nil, fmt.Errorf("product: attachment needs a drive url")
	}
	if _, err := store.FindOne[models.Product](db, "product_id", opts.ProductID); err != nil {
		return nil, err
	}

	actor := opts.Actor
	if actor == "" {
		actor = "system"
	}
	att := models.Attachment{
		AttachmentID:  "ATT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
		ProductID:     opts.ProductID,
		ProductTaskID: opts.ProductTaskID,
		Type:          opts.Type,
		DriveURL:      opts.DriveURL,
		CreatedBy:     actor,
	}
	if err := store.Create(db, &att); err != nil {
		return nil, err
	}
	if err := activity.Record(db, activity.EntityAttachment, att.AttachmentID, activity.ActionCreate, actor, nil, att); err != nil {
		return nil, err
	}
	return &att, nil
}

// AttachmentsFor lists the attachments recorded for a product.
func AttachmentsFor(db *gorm.DB, productID string) ([]models.Attachment, error) {
	return store.FindWhere[models.Attachment](db, "product_id", productID)
}
