package txwire

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/alphvault/alphvault/codec"
)

type expToken struct {
	id     string
	amount string
}

type expInput struct {
	hint   int32
	key    string
	pubKey string
}

type expOutput struct {
	amount   string
	pkh      string
	lockTime uint64
	token    *expToken
	dataLen  int
}

// checkTx decodes the transaction under two frame regimes, byte-by-byte
// and up to 255-byte frames, asserting the reviewed items, the script
// flag and the accumulated Blake2b digest are identical in both.
func checkTx(t *testing.T, txIDHex, encodedHex string, gasAmount int32,
	gasPrice string, isScript bool, inputs []expInput, outputs []expOutput) {

	t.Helper()
	encoded := hexBytes(t, encodedHex)
	wantTxID := hexBytes(t, txIDHex)
	rng := rand.New(rand.NewSource(20))

	for _, frameSize := range []int{1, 255} {
		var d TxDecoder
		tx := &d.Inner

		inputsSeen := 0
		tx.Inputs.OnItem = func(in *TxInput, index int) error {
			require.Equal(t, inputsSeen, index)
			inputsSeen++
			want := inputs[index]
			var hint [4]byte
			binary.BigEndian.PutUint32(hint[:], uint32(want.hint))
			require.Equal(t, hint, in.Hint.Bytes)
			require.Equal(t, hexBytes(t, want.key), in.Key.Bytes[:])
			require.Equal(t, UnlockP2PKH, in.Unlock.Kind())
			require.Equal(t, hexBytes(t, want.pubKey),
				in.Unlock.PublicKey.Bytes[:])
			return nil
		}
		outputsSeen := 0
		tx.FixedOutputs.OnItem = func(out *AssetOutput, index int) error {
			require.Equal(t, outputsSeen, index)
			outputsSeen++
			want := outputs[index]
			require.Equal(t, want.amount, out.Amount.String(),
				"output %d: %s", index, spew.Sdump(out.Amount))
			require.Equal(t, LockupP2PKH, out.Lockup.Kind())
			require.Equal(t, hexBytes(t, want.pkh), out.Lockup.Hash.Bytes[:])
			require.Equal(t, want.lockTime, out.LockTime.Value)
			require.Equal(t, want.dataLen, out.AdditionalData.Size())
			if want.token == nil {
				require.True(t, out.Tokens.Empty())
			} else {
				require.Equal(t, 1, out.Tokens.Len())
				token := out.Tokens.Current()
				require.Equal(t, hexBytes(t, want.token.id),
					token.ID.Bytes[:])
				require.Equal(t, want.token.amount,
					token.Amount.String())
			}
			return nil
		}

		hasher, err := blake2b.New256(nil)
		require.NoError(t, err)

		length := 0
		lastStage := codec.Stage{}
		for length < len(encoded) {
			size := rng.Intn(frameSize + 1)
			if size > len(encoded)-length {
				size = len(encoded) - length
			}
			buf := codec.NewBuffer(encoded[length:length+size], nil)
			length += size

			for {
				done, err := d.Step(buf)
				require.NoError(t, err)
				if d.Complete() {
					break
				}
				// The stage is a lexicographically non-decreasing
				// function of consumed bytes.
				stage := d.Stage()
				require.False(t, stage.Step < lastStage.Step ||
					(stage.Step == lastStage.Step &&
						stage.Index < lastStage.Index))
				lastStage = stage
				if !done {
					break
				}
			}
			hasher.Write(buf.Range(0, buf.Index()))
		}

		require.True(t, d.Complete())
		require.Len(t, inputs, inputsSeen)
		require.Len(t, outputs, outputsSeen)
		require.Equal(t, gasAmount, tx.GasAmount.Value)
		require.Equal(t, gasPrice, tx.GasPrice.String())
		require.Equal(t, isScript, tx.Script.Present())
		require.Equal(t, wantTxID, hasher.Sum(nil))
	}
}

func p2pkhInput(hint int32, key, pubKey string) expInput {
	return expInput{hint: hint, key: key, pubKey: pubKey}
}

func p2pkhOutput(amount, pkh string) expOutput {
	return expOutput{amount: amount, pkh: pkh}
}

func p2pkhOutputWithToken(amount, pkh, tokenID, tokenAmount string) expOutput {
	out := p2pkhOutput(amount, pkh)
	out.token = &expToken{id: tokenID, amount: tokenAmount}
	return out
}

func TestDecodeTransferTx(t *testing.T) {
	t.Parallel()

	inputs := []expInput{
		p2pkhInput(-882572943,
			"6c7f09df51c6e9d2412210f756dd13b12914ace98be11a506468bbc09b4457f3",
			"02622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235e"),
		p2pkhInput(-882572943,
			"c5b1c7ec8f38a446b5824ab3b4785eb59813be6309caccf09e81badba4887555",
			"02622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235e"),
		p2pkhInput(-882572943,
			"c8fc4448bd13db645484b628da13e8e95d0c1c7f63d93e2d2098dac7c902dec3",
			"02622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235e"),
		p2pkhInput(-882572943,
			"5faa376ca823d5a3bf265ff932e3ddc695b87d7d577e6c77277a96756d42cd43",
			"02622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235e"),
		p2pkhInput(-882572943,
			"6fc17b71c1a8be6f822b74d991675535cb55af5835d7f2ed146f769323c3e945",
			"02622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235e"),
		p2pkhInput(-882572943,
			"950bf46c8d7fe6ca54a2cffdbc29f60c9b666fb42cb1c09a17d2ff555e3e893e",
			"02622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235e"),
	}
	outputs := []expOutput{
		p2pkhOutput("1466836672716000000",
			"38f63ae3338e738b288103aa3d4cab822a8bfaf19ace50798bd4c8439f06c557"),
		p2pkhOutput("1058767157435000000",
			"f933eafd1dd5d5ac00d6eac5dd0f54e527e72aa8d82f81701ae6b8e481d97085"),
		p2pkhOutput("1068257924807000000",
			"2f53372b89cbe04a208643ccf098561ea545fdb121359df48378e828dbb3ef11"),
		p2pkhOutput("10021207277514000000",
			"102bdf758a5fb7c1f049e75c7d297f1aa7d84d74eeaf9cee2b388d1fc94ec480"),
		p2pkhOutput("1000460912697000000",
			"7720aecb72dfa949eefe173bdff8223346384b564389533bd267ecdfe8dcdadc"),
		p2pkhOutput("1028342676959000000",
			"df1562ff1670a6d955d1f7c27d6319289b1fc358bf357adf97d5f097a6895f0a"),
		p2pkhOutput("5674913458402000000",
			"9b85f066b1b2821339bf73e9e00bbe660b0cfb97158ceedff3260e1e4368961d"),
	}

	checkTx(t,
		"c53f150bceb13c6ca1c13fee897e688c0ef86c73ad8113edf444b7b15ecf438b",
		transferTxHex, 56860, "100000000000", false, inputs, outputs)
}

func TestDecodeTokenTransferTx(t *testing.T) {
	t.Parallel()

	inputs := []expInput{
		p2pkhInput(-166226891,
			"b26eb070309593a0aa5eef3f1ae3f7337a0dba1e7d94f3d8c4adc2743636057c",
			"02e835a6e954a0a0b0e540f4451186e5a1f99baf93a111d304866945a768c39d5c"),
		p2pkhInput(-166226891,
			"0817b6c1ea8fae4a48fb6868d8f47147ef8bd62a92589a876419352dfc510361",
			"02e835a6e954a0a0b0e540f4451186e5a1f99baf93a111d304866945a768c39d5c"),
		p2pkhInput(-166226891,
			"3cfed394414a0238ab8be798b88140c4f9255f094f30614f184afa0ba5984ba0",
			"02e835a6e954a0a0b0e540f4451186e5a1f99baf93a111d304866945a768c39d5c"),
	}
	outputs := []expOutput{
		p2pkhOutputWithToken("1000000000000000",
			"bee85f379545a2ed9f6cceb331288842f378cf0f04012ad4ac8824aae7d6f80a",
			"1a281053ba8601a658368594da034c2e99a0fb951b86498d05e76aedfe666800",
			"1000000000000000"),
		p2pkhOutput("899000000000000000",
			"bee85f379545a2ed9f6cceb331288842f378cf0f04012ad4ac8824aae7d6f80a"),
		p2pkhOutputWithToken("1000000000000000",
			"4e796b6f3b889eb8959c285ea4ef8dea6d7aad4c444e2f83f3403fdfde5d2eb6",
			"1a281053ba8601a658368594da034c2e99a0fb951b86498d05e76aedfe666800",
			"806246980016086"),
		p2pkhOutput("4081253400000000000",
			"4e796b6f3b889eb8959c285ea4ef8dea6d7aad4c444e2f83f3403fdfde5d2eb6"),
	}

	checkTx(t,
		"668827ae5719d8acb7efa4e8684cd3968738736833369ad56482b7ccb6bad5c7",
		tokenTxHex, 31180, "100000000000", false, inputs, outputs)
}

func TestDecodeScriptTx(t *testing.T) {
	t.Parallel()

	inputs := []expInput{
		p2pkhInput(-468534279,
			"030c20b11b0d1755c76eca9aee0144286933d46bfadbdd0b59976ae73e675230",
			"037fda053ebb06b77a9b03ba029f826ec3e1337e47462743bc0b5035ec0d033615"),
		p2pkhInput(-468534279,
			"3f98f4e88567ca1b978d5a59b126fa8afd7432231c8217e2684e99d3d686826e",
			"037fda053ebb06b77a9b03ba029f826ec3e1337e47462743bc0b5035ec0d033615"),
	}
	outputs := []expOutput{
		p2pkhOutputWithToken("1000000000000000",
			"5bb4d7a6644d4981818916b1d480335290ec9c38beacb827fe92dde7cab5698d",
			"5bf2f559ae714dab83ff36bed4d9e634dfda3ca9ed755d60f00be89e2a20bd00",
			"245135582277954988120"),
		p2pkhOutput("893918857600000000000",
			"5bb4d7a6644d4981818916b1d480335290ec9c38beacb827fe92dde7cab5698d"),
	}

	checkTx(t,
		"b4d93868e9b20c2757067334799ea815614fcec306eb254832dbbbd58eb8d42a",
		scriptTxHex, 49148, "100000000000", true, inputs, outputs)
}

func TestDecodeCoinbaseTx(t *testing.T) {
	t.Parallel()

	output := p2pkhOutput("2390000000000000000",
		"edae9a1e22e324a9997a1dc522ee4b3a99bb38e3a35ee4ebd147396a4a989316")
	output.lockTime = 1705610859116
	output.dataLen = 10

	checkTx(t,
		"a720a161efca30b9378da93facf1fa5fc9340ffb17e1f859f1100fa1e0b61038",
		coinbaseTxHex, 20000, "1000000000", false, nil,
		[]expOutput{output})
}
