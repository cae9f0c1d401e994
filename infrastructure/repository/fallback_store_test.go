package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/c4-store-api/infrastructure/repository/mocks"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var errRemote = errors.New("conexão recusada")

func TestFallbackStore_Init(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func(remote *mocks.MockRemote)
		noRemote bool
		validate func(t *testing.T, store *FallbackStore, connected bool)
	}{
		{
			name: "Ping com sucesso conecta",
			setup: func(remote *mocks.MockRemote) {
				remote.EXPECT().Ping(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, store *FallbackStore, connected bool) {
				assert.True(t, connected)
				assert.True(t, store.Connected())
				assert.True(t, store.Configured())
			},
		},
		{
			name: "Ping com erro permanece offline",
			setup: func(remote *mocks.MockRemote) {
				remote.EXPECT().Ping(gomock.Any()).Return(errRemote)
			},
			validate: func(t *testing.T, store *FallbackStore, connected bool) {
				assert.False(t, connected)
				assert.False(t, store.Connected())
				assert.True(t, store.Configured())
			},
		},
		{
			name:     "Sem remoto configurado opera apenas localmente",
			noRemote: true,
			validate: func(t *testing.T, store *FallbackStore, connected bool) {
				assert.False(t, connected)
				assert.False(t, store.Configured())
				assert.Equal(t, Status{Configured: false, Connected: false, Dirty: []string{}}, store.Status())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			local, kv, _ := newTestLocalStore(t)

			var store *FallbackStore
			if tt.noRemote {
				store = NewFallbackStore(nil, local, kv, FallbackOptions{})
			} else {
				remote := mocks.NewMockRemote(ctrl)
				tt.setup(remote)
				store = NewFallbackStore(remote, local, kv, FallbackOptions{})
			}

			connected := store.Init(ctx)
			tt.validate(t, store, connected)
		})
	}
}

func TestFallbackStore_RemotoSempreFalhando(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mocks.NewMockRemote(ctrl)
	remote.EXPECT().Ping(gomock.Any()).Return(nil)
	remote.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errRemote).AnyTimes()
	remote.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errRemote).AnyTimes()
	remote.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errRemote).AnyTimes()
	remote.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).Return(errRemote).AnyTimes()

	local, kv, _ := newTestLocalStore(t)
	store := NewFallbackStore(remote, local, kv, FallbackOptions{})
	require.True(t, store.Init(ctx))

	inserted, err := store.Insert(ctx, domain.TableProducts, domain.Record{"name": "Blusa", "stock": 15})
	require.NoError(t, err)
	assert.Equal(t, "prod_1", inserted.ID())

	records, err := store.Select(ctx, domain.TableProducts, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, inserted, records[0])

	updated, err := store.Update(ctx, domain.TableProducts, domain.Record{"stock": 13}, domain.Filters{"id": "prod_1"})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, float64(13), updated[0]["stock"])

	require.NoError(t, store.Delete(ctx, domain.TableProducts, domain.Filters{"id": "prod_1"}))

	records, err = store.Select(ctx, domain.TableProducts, nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	// falhas pontuais não derrubam o estado de conexão
	assert.True(t, store.Connected())
	assert.Equal(t, []string{domain.TableProducts}, kv.Dirty())
}

func TestFallbackStore_OfflineNaoConsultaRemoto(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mocks.NewMockRemote(ctrl)
	remote.EXPECT().Ping(gomock.Any()).Return(errRemote)

	local, kv, _ := newTestLocalStore(t)
	store := NewFallbackStore(remote, local, kv, FallbackOptions{})
	require.False(t, store.Init(ctx))

	_, err := store.Insert(ctx, domain.TableClients, domain.Record{"name": "Maria"})
	require.NoError(t, err)

	records, err := store.Select(ctx, domain.TableClients, nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	assert.Equal(t, Status{Configured: true, Connected: false, Dirty: []string{domain.TableClients}}, store.Status())

	report, err := store.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, report.Skipped)
}

func TestFallbackStore_SemRemotoNaoMarcaPendencias(t *testing.T) {
	ctx := context.Background()
	local, kv, _ := newTestLocalStore(t)
	store := NewFallbackStore(nil, local, kv, FallbackOptions{})
	store.Init(ctx)

	_, err := store.Insert(ctx, domain.TableClients, domain.Record{"name": "Maria"})
	require.NoError(t, err)

	assert.Empty(t, kv.Dirty())
}

func TestFallbackStore_SelectRemotoAtualizaCopiaLocal(t *testing.T) {
	ctx := context.Background()
	remoteRecords := []domain.Record{
		{"id": "prod_9", "name": "Sandália Nude", "stock": float64(12)},
	}

	tests := []struct {
		name     string
		filters  domain.Filters
		dirty    bool
		validate func(t *testing.T, local []domain.Record)
	}{
		{
			name: "Leitura completa substitui a tabela local",
			validate: func(t *testing.T, local []domain.Record) {
				assert.Equal(t, remoteRecords, local)
			},
		},
		{
			name:    "Leitura filtrada não altera a tabela local",
			filters: domain.Filters{"name": "sandália"},
			validate: func(t *testing.T, local []domain.Record) {
				require.Len(t, local, 1)
				assert.Equal(t, "prod_1", local[0].ID())
			},
		},
		{
			name:  "Tabela pendente de sincronização não é sobrescrita",
			dirty: true,
			validate: func(t *testing.T, local []domain.Record) {
				require.Len(t, local, 1)
				assert.Equal(t, "prod_1", local[0].ID())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			local, kv, _ := newTestLocalStore(t)
			_, err := local.Insert(ctx, domain.TableProducts, domain.Record{"name": "Blusa"})
			require.NoError(t, err)
			if tt.dirty {
				require.NoError(t, kv.MarkDirty(domain.TableProducts))
			}

			remote := mocks.NewMockRemote(ctrl)
			remote.EXPECT().Ping(gomock.Any()).Return(nil)
			remote.EXPECT().Select(gomock.Any(), domain.TableProducts, tt.filters).Return(remoteRecords, nil)

			store := NewFallbackStore(remote, local, kv, FallbackOptions{})
			require.True(t, store.Init(ctx))

			records, err := store.Select(ctx, domain.TableProducts, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, remoteRecords, records)

			localRecords, err := local.Select(ctx, domain.TableProducts, nil)
			require.NoError(t, err)
			tt.validate(t, localRecords)
		})
	}
}

func TestFallbackStore_Sync(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func(remote *mocks.MockRemote)
		validate func(t *testing.T, report SyncReport, dirty []string)
	}{
		{
			name: "Envia as tabelas pendentes e limpa o conjunto",
			setup: func(remote *mocks.MockRemote) {
				remote.EXPECT().Upsert(gomock.Any(), domain.TableClients, gomock.Len(2)).Return(nil)
				remote.EXPECT().Upsert(gomock.Any(), domain.TableSales, gomock.Len(1)).Return(nil)
			},
			validate: func(t *testing.T, report SyncReport, dirty []string) {
				assert.False(t, report.Skipped)
				assert.Equal(t, []TableSync{
					{Table: domain.TableClients, Records: 2},
					{Table: domain.TableSales, Records: 1},
				}, report.Tables)
				assert.Empty(t, dirty)
			},
		},
		{
			name: "Tabela com falha permanece pendente",
			setup: func(remote *mocks.MockRemote) {
				remote.EXPECT().Upsert(gomock.Any(), domain.TableClients, gomock.Any()).Return(errRemote)
				remote.EXPECT().Upsert(gomock.Any(), domain.TableSales, gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, report SyncReport, dirty []string) {
				require.Len(t, report.Tables, 2)
				assert.Equal(t, errRemote.Error(), report.Tables[0].Error)
				assert.Empty(t, report.Tables[1].Error)
				assert.Equal(t, []string{domain.TableClients}, dirty)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			local, kv, _ := newTestLocalStore(t)
			for _, name := range []string{"Maria", "Ana"} {
				_, err := local.Insert(ctx, domain.TableClients, domain.Record{"name": name})
				require.NoError(t, err)
			}
			_, err := local.Insert(ctx, domain.TableSales, domain.Record{"total": 53})
			require.NoError(t, err)
			require.NoError(t, kv.MarkDirty(domain.TableSales))
			require.NoError(t, kv.MarkDirty(domain.TableClients))

			remote := mocks.NewMockRemote(ctrl)
			remote.EXPECT().Ping(gomock.Any()).Return(nil)
			tt.setup(remote)

			store := NewFallbackStore(remote, local, kv, FallbackOptions{})
			require.True(t, store.Init(ctx))

			report, err := store.Sync(ctx)
			require.NoError(t, err)
			tt.validate(t, report, kv.Dirty())
		})
	}
}
