package txwire

// Unsigned transaction test vectors, hex encoded.
const (
	transferTxHex = "0000008000de1cc1174876e80006cb6501716c7f09df51c6e9d2412210f756dd13b12914ace98be11a506468bbc09b4457f30002622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235ecb650171c5b1c7ec8f38a446b5824ab3b4785eb59813be6309caccf09e81badba48875550002622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235ecb650171c8fc4448bd13db645484b628da13e8e95d0c1c7f63d93e2d2098dac7c902dec30002622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235ecb6501715faa376ca823d5a3bf265ff932e3ddc695b87d7d577e6c77277a96756d42cd430002622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235ecb6501716fc17b71c1a8be6f822b74d991675535cb55af5835d7f2ed146f769323c3e9450002622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235ecb650171950bf46c8d7fe6ca54a2cffdbc29f60c9b666fb42cb1c09a17d2ff555e3e893e0002622da4723abe3e57e6926b69a049635dad0f9059a89ca222d83f0b2da256235e07c4145b402ea4c0cb000038f63ae3338e738b288103aa3d4cab822a8bfaf19ace50798bd4c8439f06c55700000000000000000000c40eb17f1ebec364c000f933eafd1dd5d5ac00d6eac5dd0f54e527e72aa8d82f81701ae6b8e481d9708500000000000000000000c40ed336ec389dffc0002f53372b89cbe04a208643ccf098561ea545fdb121359df48378e828dbb3ef1100000000000000000000c48b127aec9cc8068000102bdf758a5fb7c1f049e75c7d297f1aa7d84d74eeaf9cee2b388d1fc94ec48000000000000000000000c40de259e640f7c040007720aecb72dfa949eefe173bdff8223346384b564389533bd267ecdfe8dcdadc00000000000000000000c40e4568375f83f5c000df1562ff1670a6d955d1f7c27d6319289b1fc358bf357adf97d5f097a6895f0a00000000000000000000c44ec157b933227c80009b85f066b1b2821339bf73e9e00bbe660b0cfb97158ceedff3260e1e4368961d00000000000000000000"

	tokenTxHex = "000000800079ccc1174876e80003f6179435b26eb070309593a0aa5eef3f1ae3f7337a0dba1e7d94f3d8c4adc2743636057c0002e835a6e954a0a0b0e540f4451186e5a1f99baf93a111d304866945a768c39d5cf61794350817b6c1ea8fae4a48fb6868d8f47147ef8bd62a92589a876419352dfc5103610002e835a6e954a0a0b0e540f4451186e5a1f99baf93a111d304866945a768c39d5cf61794353cfed394414a0238ab8be798b88140c4f9255f094f30614f184afa0ba5984ba00002e835a6e954a0a0b0e540f4451186e5a1f99baf93a111d304866945a768c39d5c04c3038d7ea4c6800000bee85f379545a2ed9f6cceb331288842f378cf0f04012ad4ac8824aae7d6f80a0000000000000000011a281053ba8601a658368594da034c2e99a0fb951b86498d05e76aedfe666800c3038d7ea4c6800000c40c79e3bca513800000bee85f379545a2ed9f6cceb331288842f378cf0f04012ad4ac8824aae7d6f80a00000000000000000000c3038d7ea4c68000004e796b6f3b889eb8959c285ea4ef8dea6d7aad4c444e2f83f3403fdfde5d2eb60000000000000000011a281053ba8601a658368594da034c2e99a0fb951b86498d05e76aedfe666800c302dd4700d857d600c438a38658095af000004e796b6f3b889eb8959c285ea4ef8dea6d7aad4c444e2f83f3403fdfde5d2eb600000000000000000000"

	scriptTxHex = "0000010101030001000b1440205bf2f559ae714dab83ff36bed4d9e634dfda3ca9ed755d60f00be89e2a20bd001700b4160013c5056bc75e2d63100000a313c5056bc75e2d631000000d0c1440205bf2f559ae714dab83ff36bed4d9e634dfda3ca9ed755d60f00be89e2a20bd00010e8000bffcc1174876e80002e412bbf9030c20b11b0d1755c76eca9aee0144286933d46bfadbdd0b59976ae73e67523000037fda053ebb06b77a9b03ba029f826ec3e1337e47462743bc0b5035ec0d033615e412bbf93f98f4e88567ca1b978d5a59b126fa8afd7432231c8217e2684e99d3d686826e00037fda053ebb06b77a9b03ba029f826ec3e1337e47462743bc0b5035ec0d03361502c3038d7ea4c68000005bb4d7a6644d4981818916b1d480335290ec9c38beacb827fe92dde7cab5698d0000000000000000015bf2f559ae714dab83ff36bed4d9e634dfda3ca9ed755d60f00be89e2a20bd00c50d49f0894c3e0c685800c530759dc0cd56ff0000005bb4d7a6644d4981818916b1d480335290ec9c38beacb827fe92dde7cab5698d00000000000000000000"

	coinbaseTxHex = "00000080004e20bb9aca000001c4212afc56552f000000edae9a1e22e324a9997a1dc522ee4b3a99bb38e3a35ee4ebd147396a4a9893160000018d1e54526c000a00000000018d1c8a8eec"
)
