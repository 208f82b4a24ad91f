package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/orakon-chain/orakon/x/datafeed/types"
	"github.com/orakon-chain/orakon/x/shared/coordinator"
)

// Store keys local to the datafeed module. Shared coordinator state
// lives above 0xC0.
var (
	jobKeyPrefix        = []byte{0x01}
	submissionKeyPrefix = []byte{0x02}
)

// Keeper of the datafeed store. The shared coordinator base carries the
// oracle set, fee config and commitment lifecycle; the keeper adds the
// job registry and per-request multi-oracle aggregation.
type Keeper struct {
	coordinator.Base

	storeKey  storetypes.StoreKey
	authority string
	hooks     types.DatafeedHooks
	metrics   *DatafeedMetrics
}

// NewKeeper creates a new datafeed Keeper instance.
func NewKeeper(
	key storetypes.StoreKey,
	ledger coordinator.Ledger,
	authority string,
) *Keeper {
	return &Keeper{
		Base:      coordinator.NewBase(key, types.ModuleName, ledger),
		storeKey:  key,
		authority: authority,
		metrics:   NewDatafeedMetrics(),
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetAuthority returns the module's authority (governance account).
func (k Keeper) GetAuthority() string {
	return k.authority
}

// SetHooks sets the consumer callback hooks. Can only be called once.
func (k *Keeper) SetHooks(hooks types.DatafeedHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set datafeed hooks twice")
	}
	k.hooks = hooks
	return k
}

func (k Keeper) getStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

func jobKey(jobID string) []byte {
	return append(jobKeyPrefix, []byte(jobID)...)
}

// RegisterJob adds a job id with its response type.
func (k Keeper) RegisterJob(ctx sdk.Context, job types.Job) error {
	if err := job.Validate(); err != nil {
		return types.ErrInvalidJobID.Wrap(err.Error())
	}
	store := k.getStore(ctx)
	if store.Has(jobKey(job.JobID)) {
		return types.ErrJobExists.Wrap(job.JobID)
	}
	store.Set(jobKey(job.JobID), []byte(job.ResponseType))

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeJobRegistered,
		sdk.NewAttribute(types.AttributeKeyJobID, job.JobID),
		sdk.NewAttribute(types.AttributeKeyResponseType, string(job.ResponseType)),
	))
	return nil
}

// GetJob returns the job for an id.
func (k Keeper) GetJob(ctx sdk.Context, jobID string) (types.Job, bool) {
	bz := k.getStore(ctx).Get(jobKey(jobID))
	if bz == nil {
		return types.Job{}, false
	}
	return types.Job{JobID: jobID, ResponseType: types.ResponseType(bz)}, true
}

// IterateJobs walks the registered job set.
func (k Keeper) IterateJobs(ctx sdk.Context, cb func(job types.Job) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), jobKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		job := types.Job{
			JobID:        string(iterator.Key()[len(jobKeyPrefix):]),
			ResponseType: types.ResponseType(iterator.Value()),
		}
		if cb(job) {
			break
		}
	}
}

// ValidateNumSubmission checks the requested submission count against
// the job's response type and the registered oracle set. Bool jobs need
// an even count so that a strict majority always decides; median and
// majority jobs are capped at half the oracle count.
func (k Keeper) ValidateNumSubmission(ctx sdk.Context, jobID string, numSubmission uint32) error {
	job, found := k.GetJob(ctx, jobID)
	if !found {
		return types.ErrInvalidJobID.Wrap(jobID)
	}
	if numSubmission == 0 {
		return types.ErrInvalidNumSubmission.Wrap("must be positive")
	}
	if job.ResponseType == types.ResponseBool && numSubmission%2 != 0 {
		return types.ErrInvalidNumSubmission.Wrapf("bool jobs need an even submission count, got %d", numSubmission)
	}
	if job.ResponseType.Numeric() || job.ResponseType == types.ResponseBool {
		if half := k.OracleCount(ctx) / 2; numSubmission > half {
			return types.ErrInvalidNumSubmission.Wrapf("%d exceeds half the oracle count (%d)", numSubmission, half)
		}
	}
	return nil
}

// Submission is one oracle's response to a request.
type Submission struct {
	Oracle string `json:"oracle"`
	Value  string `json:"value"`
}

func submissionKey(requestID string) []byte {
	return append(submissionKeyPrefix, []byte(requestID)...)
}

// GetSubmissions returns the responses collected so far for a request.
func (k Keeper) GetSubmissions(ctx sdk.Context, requestID string) []Submission {
	bz := k.getStore(ctx).Get(submissionKey(requestID))
	if bz == nil {
		return nil
	}
	var subs []Submission
	if err := json.Unmarshal(bz, &subs); err != nil {
		return nil
	}
	return subs
}

func (k Keeper) setSubmissions(ctx sdk.Context, requestID string, subs []Submission) error {
	bz, err := json.Marshal(subs)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(submissionKey(requestID), bz)
	return nil
}

func (k Keeper) deleteSubmissions(ctx sdk.Context, requestID string) {
	k.getStore(ctx).Delete(submissionKey(requestID))
}
