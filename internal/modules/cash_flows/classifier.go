package cash_flows

import (
	"strings"

	"github.com/Alexeusss/T-Invest-Tracker/internal/clients/tinkoff"
)

// tagBuckets maps canonical operation-type tokens to buckets. Tags arrive
// as enum constants ("OPERATION_TYPE_PAY_IN") or human labels ("TopUp"),
// so matching is by token containment over this ordered table rather than
// exact equality. Anything the table does not cover is unclassified.
var tagBuckets = []struct {
	token  string
	bucket Bucket
}{
	{"PAY_IN", BucketContribution},
	{"INPUT", BucketContribution},
	{"TOP_UP", BucketContribution},
	{"TOPUP", BucketContribution},
	{"PAY_OUT", BucketWithdrawal},
	{"OUTPUT", BucketWithdrawal},
	{"WITHDRAW", BucketWithdrawal},
	{"DIVIDEND", BucketIncome},
	{"COUPON", BucketIncome},
	{"TAX", BucketFee},
	{"FEE", BucketFee},
	{"OVERNIGHT", BucketFee},
	{"BUY", BucketTrade},
	{"SELL", BucketTrade},
}

// classifyTag buckets a single raw tag.
func classifyTag(tag string) Bucket {
	if tag == "" {
		return BucketUnclassified
	}
	upper := strings.ToUpper(tag)
	for _, entry := range tagBuckets {
		if strings.Contains(upper, entry.token) {
			return entry.bucket
		}
	}
	return BucketUnclassified
}

// Classify buckets an operation. The human-readable operation type is
// preferred; when it is absent or yields no classification the primary
// type tag decides. The fallback matters: some feeds label pay-ins with a
// human tag the table doesn't know while the primary tag is a clean
// OPERATION_TYPE_PAY_IN.
func Classify(op tinkoff.Operation) Bucket {
	if bucket := classifyTag(op.OperationType); bucket != BucketUnclassified {
		return bucket
	}
	return classifyTag(op.Type)
}

// FlowRelevant reports whether a bucket moves cash in or out of the
// account or represents income/expense. Trades swap cash for securities
// and are excluded, as are unclassified operations.
func FlowRelevant(bucket Bucket) bool {
	switch bucket {
	case BucketContribution, BucketWithdrawal, BucketIncome, BucketFee:
		return true
	default:
		return false
	}
}
