package grifts

import (
	"github.com/gobuffalo/grift/grift"

	"github.com/silinternational/cover-agri/storage"
)

var _ = grift.Namespace("storage", func() {
	_ = grift.Desc("bucket", "Create the S3 bucket that holds claim snapshots")
	_ = grift.Add("bucket", func(c *grift.Context) error {
		return storage.CreateS3Bucket()
	})
})
