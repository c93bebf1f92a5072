package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// CreateFolder makes a virtual directory visible by writing its marker object
func (s *Service) CreateFolder(ctx context.Context, dir, folderName string) error {
	name, err := SanitizeName(folderName)
	if err != nil {
		return err
	}

	key := s.prefixFor(dir) + name + "/" + FolderMarker
	_, err = s.store.PutObject(ctx, s.bucket, key, strings.NewReader(""), 0, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("create folder %q: %w", name, err)
	}

	s.invalidate(dir)
	s.logger.Info("folder created", "dir", dir, "name", name)
	return nil
}

// Upload normalizes and stores one image in the given directory
func (s *Service) Upload(ctx context.Context, dir, filename string, r io.Reader) error {
	name, err := SanitizeName(filename)
	if err != nil {
		return err
	}

	data, contentType, err := ProcessImage(name, r)
	if err != nil {
		return err
	}

	key := s.prefixFor(dir) + name
	_, err = s.store.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %q: %w", name, err)
	}

	s.invalidate(dir)
	s.logger.Info("image uploaded", "dir", dir, "name", name, "bytes", len(data))
	return nil
}

// RenameFolder moves every object under the old folder prefix to the new one
func (s *Service) RenameFolder(ctx context.Context, dir, oldName, newName string) error {
	oldSafe, err := SanitizeName(oldName)
	if err != nil {
		return err
	}
	newSafe, err := SanitizeName(newName)
	if err != nil {
		return err
	}

	oldPrefix := s.prefixFor(dir) + oldSafe + "/"
	newPrefix := s.prefixFor(dir) + newSafe + "/"

	objects, err := s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    oldPrefix,
		Recursive: true,
	})
	if err != nil {
		return fmt.Errorf("list folder %q: %w", oldSafe, err)
	}
	if len(objects) == 0 {
		return fmt.Errorf("%w: folder %q", ErrNotFound, oldSafe)
	}

	for _, obj := range objects {
		dstKey := newPrefix + strings.TrimPrefix(obj.Key, oldPrefix)
		if err := s.store.CopyObject(ctx, s.bucket, obj.Key, dstKey); err != nil {
			return fmt.Errorf("copy %q: %w", obj.Key, err)
		}
	}
	for _, obj := range objects {
		if err := s.store.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove %q: %w", obj.Key, err)
		}
	}

	s.invalidate(dir)
	s.logger.Info("folder renamed", "dir", dir, "from", oldSafe, "to", newSafe)
	return nil
}

// Delete removes the object at path if one matches exactly, otherwise treats
// path as a folder and removes everything under it.
func (s *Service) Delete(ctx context.Context, dir, relPath string) error {
	safe, err := SanitizePath(relPath)
	if err != nil {
		return err
	}

	key := s.prefixFor(dir) + safe
	if _, statErr := s.store.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); statErr == nil {
		if err := s.store.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove %q: %w", key, err)
		}
		s.invalidate(dir)
		s.logger.Info("object deleted", "key", key)
		return nil
	}

	objects, err := s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    key + "/",
		Recursive: true,
	})
	if err != nil {
		return fmt.Errorf("list %q: %w", key, err)
	}
	if len(objects) == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, safe)
	}
	for _, obj := range objects {
		if err := s.store.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove %q: %w", obj.Key, err)
		}
	}

	s.invalidate(dir)
	s.logger.Info("folder deleted", "prefix", key+"/", "objects", len(objects))
	return nil
}
