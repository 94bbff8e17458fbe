// Copyright 2025 BucketFlow
// SPDX-License-Identifier: Apache-2.0
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package minio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"bucketflow/platform/connectors/base"
	"bucketflow/platform/connectors/sdk"
	"bucketflow/platform/storage"
)

// Connector implements storage.Store against MinIO or any S3-compatible
// endpoint using the AWS SDK with path-style addressing.
type Connector struct {
	sdk.BaseConnector
	client *s3.Client
}

// NewConnector creates a new MinIO connector instance
func NewConnector() *Connector {
	conn := &Connector{}
	conn.BaseConnector = *sdk.NewBaseConnector("minio")
	conn.SetVersion("1.0.0")
	conn.SetCapabilities([]string{
		"buckets",
		"objects",
		"tagging",
		"policy",
		"encryption",
	})

	conn.SetValidator(sdk.NewDefaultConfigValidator(
		[]string{"endpoint"},
		map[string]interface{}{
			"region": "us-east-1",
			"secure": false,
		},
	))

	return conn
}

// Connect establishes the S3 client and verifies connectivity
func (c *Connector) Connect(ctx context.Context, cfg *base.ConnectorConfig) error {
	if err := c.BaseConnector.Connect(ctx, cfg); err != nil {
		return err
	}

	endpoint := c.GetStringOption("endpoint", "")
	region := c.GetStringOption("region", "us-east-1")
	secure := c.GetBoolOption("secure", false)

	accessKey := c.GetCredential("access_key")
	secretKey := c.GetCredential("secret_key")

	// MinIO endpoints are usually given as host:port without a scheme
	if !strings.Contains(endpoint, "://") {
		if secure {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}

	optFns := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	if accessKey != "" && secretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")
		optFns = append(optFns, awsconfig.WithCredentialsProvider(creds))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return base.NewConnectorError(cfg.Name, "Connect", "failed to load AWS config", err)
	}

	// Path-style is mandatory: MinIO does not resolve virtual-host bucket names
	c.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	if _, err := c.client.ListBuckets(ctx, &s3.ListBucketsInput{}); err != nil {
		c.client = nil
		c.SetConnected(false)
		return base.NewConnectorError(cfg.Name, "Connect", fmt.Sprintf("failed to verify connectivity to %s", endpoint), err)
	}

	// Optional client-side throttle on backend calls
	if rate := c.GetIntOption("rate_limit", 0); rate > 0 {
		burst := c.GetIntOption("burst", rate)
		c.SetRateLimiter(sdk.NewRateLimiter(float64(rate), burst))
		c.Log("Rate limiting backend calls to %d/s (burst %d)", rate, burst)
	}

	c.GetMetrics().RecordConnect()
	c.Log("Connected to MinIO (endpoint: %s, region: %s)", endpoint, region)

	return nil
}

// Disconnect releases the S3 client
func (c *Connector) Disconnect(ctx context.Context) error {
	c.GetMetrics().RecordDisconnect()
	c.client = nil
	return c.BaseConnector.Disconnect(ctx)
}

// HealthCheck verifies backend connectivity with a bucket listing
func (c *Connector) HealthCheck(ctx context.Context) (*base.HealthStatus, error) {
	if c.client == nil {
		return &base.HealthStatus{
			Healthy:   false,
			Error:     "client not initialized",
			Timestamp: time.Now(),
		}, nil
	}

	start := time.Now()
	_, err := c.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	latency := time.Since(start)

	if err != nil {
		return &base.HealthStatus{
			Healthy:   false,
			Error:     err.Error(),
			Latency:   latency,
			Timestamp: time.Now(),
		}, nil
	}

	return &base.HealthStatus{
		Healthy: true,
		Latency: latency,
		Details: map[string]string{
			"endpoint": c.GetStringOption("endpoint", ""),
			"region":   c.GetStringOption("region", "us-east-1"),
		},
		Timestamp: time.Now(),
	}, nil
}

// ListBuckets enumerates all buckets
func (c *Connector) ListBuckets(ctx context.Context) ([]storage.BucketInfo, error) {
	if err := c.ready(ctx); err != nil {
		return nil, err
	}

	timer := time.Now()
	output, err := c.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	c.GetMetrics().RecordCall(time.Since(timer), err)
	if err != nil {
		return nil, mapError(err)
	}

	buckets := make([]storage.BucketInfo, 0, len(output.Buckets))
	for _, b := range output.Buckets {
		buckets = append(buckets, storage.BucketInfo{
			Name:         aws.ToString(b.Name),
			CreationDate: aws.ToTime(b.CreationDate),
		})
	}

	return buckets, nil
}

// BucketExists reports whether the bucket exists. Each call is a fresh
// round-trip, never a cached answer.
func (c *Connector) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if err := c.ready(ctx); err != nil {
		return false, err
	}

	timer := time.Now()
	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	c.GetMetrics().RecordCall(time.Since(timer), err)

	if err != nil {
		mapped := mapError(err)
		if errors.Is(mapped, storage.ErrNoSuchBucket) || errors.Is(mapped, storage.ErrNoSuchKey) {
			return false, nil
		}
		return false, mapped
	}

	return true, nil
}

// MakeBucket creates a bucket
func (c *Connector) MakeBucket(ctx context.Context, bucket string) error {
	if err := c.ready(ctx); err != nil {
		return err
	}

	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}

	region := c.GetStringOption("region", "us-east-1")
	if region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	timer := time.Now()
	_, err := c.client.CreateBucket(ctx, input)
	c.GetMetrics().RecordCall(time.Since(timer), err)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// RemoveBucket deletes a bucket. The backend rejects non-empty buckets.
func (c *Connector) RemoveBucket(ctx context.Context, bucket string) error {
	if err := c.ready(ctx); err != nil {
		return err
	}

	timer := time.Now()
	_, err := c.client.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(bucket),
	})
	c.GetMetrics().RecordCall(time.Since(timer), err)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetBucketTagging returns the bucket's tags. A bucket without a tag set
// yields an empty map, not an error.
func (c *Connector) GetBucketTagging(ctx context.Context, bucket string) (map[string]string, error) {
	if err := c.ready(ctx); err != nil {
		return nil, err
	}

	timer := time.Now()
	output, err := c.client.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{
		Bucket: aws.String(bucket),
	})
	c.GetMetrics().RecordCall(time.Since(timer), err)

	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchTagSet" {
			return map[string]string{}, nil
		}
		return nil, mapError(err)
	}

	tags := make(map[string]string, len(output.TagSet))
	for _, tag := range output.TagSet {
		tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	return tags, nil
}

// GetBucketPolicy returns the bucket's policy document, or
// storage.ErrNoSuchPolicy when none is configured.
func (c *Connector) GetBucketPolicy(ctx context.Context, bucket string) (string, error) {
	if err := c.ready(ctx); err != nil {
		return "", err
	}

	timer := time.Now()
	output, err := c.client.GetBucketPolicy(ctx, &s3.GetBucketPolicyInput{
		Bucket: aws.String(bucket),
	})
	c.GetMetrics().RecordCall(time.Since(timer), err)
	if err != nil {
		return "", mapError(err)
	}

	return aws.ToString(output.Policy), nil
}

// GetBucketEncryption returns the bucket's server-side encryption
// configuration, or nil when none is set.
func (c *Connector) GetBucketEncryption(ctx context.Context, bucket string) (*storage.SSEConfig, error) {
	if err := c.ready(ctx); err != nil {
		return nil, err
	}

	timer := time.Now()
	output, err := c.client.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{
		Bucket: aws.String(bucket),
	})
	c.GetMetrics().RecordCall(time.Since(timer), err)

	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ServerSideEncryptionConfigurationNotFoundError" {
			return nil, nil
		}
		return nil, mapError(err)
	}

	if output.ServerSideEncryptionConfiguration == nil || len(output.ServerSideEncryptionConfiguration.Rules) == 0 {
		return nil, nil
	}

	rule := output.ServerSideEncryptionConfiguration.Rules[0]
	if rule.ApplyServerSideEncryptionByDefault == nil {
		return nil, nil
	}

	return &storage.SSEConfig{
		Algorithm: string(rule.ApplyServerSideEncryptionByDefault.SSEAlgorithm),
		KMSKeyID:  aws.ToString(rule.ApplyServerSideEncryptionByDefault.KMSMasterKeyID),
	}, nil
}

// ListObjects streams every object under prefix across ListObjectsV2 pages.
// The producer stops as soon as the consumer cancels ctx.
func (c *Connector) ListObjects(ctx context.Context, bucket, prefix string) <-chan storage.ObjectEntry {
	entries := make(chan storage.ObjectEntry)

	go func() {
		defer close(entries)

		if err := c.ready(ctx); err != nil {
			emit(ctx, entries, storage.ObjectEntry{Err: err})
			return
		}

		var continuationToken *string
		for {
			input := &s3.ListObjectsV2Input{
				Bucket:            aws.String(bucket),
				Prefix:            aws.String(prefix),
				ContinuationToken: continuationToken,
			}

			timer := time.Now()
			output, err := c.client.ListObjectsV2(ctx, input)
			c.GetMetrics().RecordCall(time.Since(timer), err)
			if err != nil {
				emit(ctx, entries, storage.ObjectEntry{Err: mapError(err)})
				return
			}

			for _, obj := range output.Contents {
				entry := storage.ObjectEntry{
					ObjectInfo: storage.ObjectInfo{
						Key:          aws.ToString(obj.Key),
						Size:         aws.ToInt64(obj.Size),
						LastModified: aws.ToTime(obj.LastModified),
						ETag:         strings.Trim(aws.ToString(obj.ETag), "\""),
						StorageClass: string(obj.StorageClass),
					},
				}
				if !emit(ctx, entries, entry) {
					return
				}
			}

			if !aws.ToBool(output.IsTruncated) {
				return
			}
			continuationToken = output.NextContinuationToken
		}
	}()

	return entries
}

// StatObject returns full object metadata, or storage.ErrNoSuchKey when the
// object is absent.
func (c *Connector) StatObject(ctx context.Context, bucket, key string) (*storage.ObjectStat, error) {
	if err := c.ready(ctx); err != nil {
		return nil, err
	}

	timer := time.Now()
	output, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	c.GetMetrics().RecordCall(time.Since(timer), err)
	if err != nil {
		return nil, mapError(err)
	}

	stat := &storage.ObjectStat{
		ObjectInfo: storage.ObjectInfo{
			Key:          key,
			Size:         aws.ToInt64(output.ContentLength),
			LastModified: aws.ToTime(output.LastModified),
			ETag:         strings.Trim(aws.ToString(output.ETag), "\""),
			StorageClass: string(output.StorageClass),
		},
		ContentType:    aws.ToString(output.ContentType),
		Metadata:       output.Metadata,
		VersionID:      aws.ToString(output.VersionId),
		IsDeleteMarker: aws.ToBool(output.DeleteMarker),
	}

	return stat, nil
}

// RemoveObject deletes an object, targeting a specific version when
// versionID is non-empty. Deleting an absent object returns
// storage.ErrNoSuchKey.
func (c *Connector) RemoveObject(ctx context.Context, bucket, key, versionID string) error {
	if err := c.ready(ctx); err != nil {
		return err
	}

	// S3 DeleteObject succeeds on missing keys; stat first so repeated
	// deletes surface the absence. The stat must target the same version
	// the delete will, since the current version may be a delete marker.
	head := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if versionID != "" {
		head.VersionId = aws.String(versionID)
	}

	timer := time.Now()
	_, err := c.client.HeadObject(ctx, head)
	c.GetMetrics().RecordCall(time.Since(timer), err)
	if err != nil {
		return mapError(err)
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	if versionID != "" {
		input.VersionId = aws.String(versionID)
	}

	timer = time.Now()
	_, err = c.client.DeleteObject(ctx, input)
	c.GetMetrics().RecordCall(time.Since(timer), err)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// ready applies the rate limit and rejects calls before Connect
func (c *Connector) ready(ctx context.Context) error {
	if c.client == nil {
		return base.NewConnectorError(c.Name(), "Call", "client not initialized", nil)
	}
	return c.WaitForSlot(ctx)
}

// emit sends one entry unless the consumer has gone away
func emit(ctx context.Context, ch chan<- storage.ObjectEntry, entry storage.ObjectEntry) bool {
	select {
	case ch <- entry:
		return true
	case <-ctx.Done():
		return false
	}
}

// mapError translates S3 API failures onto the storage sentinels so the
// dispatch layer never sees SDK types. Unrecognized errors pass through
// with the backend message intact.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var noBucket *types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return storage.ErrNoSuchBucket
	}

	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return storage.ErrNoSuchKey
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return storage.ErrNoSuchKey
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return storage.ErrNoSuchBucket
		case "NoSuchKey", "NotFound", "404":
			return storage.ErrNoSuchKey
		case "NoSuchBucketPolicy":
			return storage.ErrNoSuchPolicy
		}
	}

	return err
}

// Verify Connector implements both contracts
var (
	_ base.Connector = (*Connector)(nil)
	_ storage.Store  = (*Connector)(nil)
)
